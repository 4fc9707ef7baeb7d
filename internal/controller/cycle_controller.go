package controller

import (
	"okr_backend/internal/service"
	"okr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CycleController struct {
	CycleService *service.CycleService
}

func NewCycleController(cycleService *service.CycleService) *CycleController {
	return &CycleController{CycleService: cycleService}
}

// @Summary 创建周期
// @Tags 周期
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cycle body service.CreateCycleRequest true "周期信息"
// @Success 201 {object} util.Response
// @Router /api/cycles [post]
func (c *CycleController) CreateCycle(ctx *gin.Context) {
	var req service.CreateCycleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cycle, err := c.CycleService.CreateCycle(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, cycle)
}

// @Summary 获取周期列表
// @Tags 周期
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/cycles [get]
func (c *CycleController) ListCycles(ctx *gin.Context) {
	cycles, err := c.CycleService.ListCycles()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, cycles)
}

// @Summary 获取周期
// @Tags 周期
// @Produce json
// @Security BearerAuth
// @Param id path int true "周期ID"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id} [get]
func (c *CycleController) GetCycle(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	cycle, err := c.CycleService.GetCycle(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, cycle)
}
