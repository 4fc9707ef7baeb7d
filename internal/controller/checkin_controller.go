package controller

import (
	"okr_backend/internal/service"
	"okr_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	CheckInService *service.CheckInService
}

func NewCheckInController(checkInService *service.CheckInService) *CheckInController {
	return &CheckInController{CheckInService: checkInService}
}

// @Summary 签到
// @Description 记录关键结果的最新数值
// @Tags 签到
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "关键结果ID"
// @Param checkIn body service.CreateCheckInRequest true "签到信息"
// @Success 201 {object} util.Response
// @Router /api/key-results/{id}/check-ins [post]
func (c *CheckInController) RecordCheckIn(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req service.CreateCheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	checkIn, err := c.CheckInService.RecordCheckIn(ctx.Request.Context(), actor, id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, checkIn)
}

// @Summary 签到历史
// @Tags 签到
// @Produce json
// @Security BearerAuth
// @Param id path int true "关键结果ID"
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response
// @Router /api/key-results/{id}/check-ins [get]
func (c *CheckInController) ListCheckIns(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))

	checkIns, err := c.CheckInService.ListCheckIns(actor, id, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, checkIns)
}
