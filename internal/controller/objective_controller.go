package controller

import (
	"okr_backend/internal/service"
	"okr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ObjectiveController 处理目标相关的API请求
type ObjectiveController struct {
	ObjectiveService *service.ObjectiveService
}

func NewObjectiveController(objectiveService *service.ObjectiveService) *ObjectiveController {
	return &ObjectiveController{ObjectiveService: objectiveService}
}

// @Summary 创建目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param objective body service.CreateObjectiveRequest true "目标信息"
// @Success 201 {object} util.Response
// @Router /api/objectives [post]
func (c *ObjectiveController) CreateObjective(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req service.CreateObjectiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	objective, err := c.ObjectiveService.CreateObjective(actor, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, objective)
}

// @Summary 获取目标列表
// @Description 默认返回当前用户的目标，经理和管理员可以通过 ownerId 查看其他成员
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param ownerId query int false "用户ID"
// @Param cycleId query int false "周期ID"
// @Success 200 {object} util.Response
// @Router /api/objectives [get]
func (c *ObjectiveController) ListObjectives(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	ownerID := util.MustParseUint(ctx.Query("ownerId"))
	cycleID := util.MustParseUint(ctx.Query("cycleId"))

	objectives, err := c.ObjectiveService.ListObjectives(actor, ownerID, cycleID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, objectives)
}

// @Summary 获取目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/objectives/{id} [get]
func (c *ObjectiveController) GetObjective(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	objective, err := c.ObjectiveService.GetObjective(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, objective)
}

// @Summary 目标进度汇总
// @Description 计算目标下每个关键结果的实际进度、理想进度和节奏状态，并给出汇总
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/objectives/{id}/summary [get]
func (c *ObjectiveController) GetSummary(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.ObjectiveService.Summary(ctx.Request.Context(), actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
