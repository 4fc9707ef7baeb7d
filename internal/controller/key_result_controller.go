package controller

import (
	"net/http"
	"okr_backend/internal/service"
	"okr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KeyResultController struct {
	KeyResultService *service.KeyResultService
}

func NewKeyResultController(keyResultService *service.KeyResultService) *KeyResultController {
	return &KeyResultController{KeyResultService: keyResultService}
}

// @Summary 创建关键结果
// @Tags 关键结果
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param keyResult body service.CreateKeyResultRequest true "关键结果信息"
// @Success 201 {object} util.Response
// @Router /api/objectives/{id}/key-results [post]
func (c *KeyResultController) CreateKeyResult(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	objectiveID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req service.CreateKeyResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kr, err := c.KeyResultService.CreateKeyResult(ctx.Request.Context(), actor, objectiveID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, kr)
}

// @Summary 获取关键结果
// @Description 返回关键结果以及实时计算的进度和状态
// @Tags 关键结果
// @Produce json
// @Security BearerAuth
// @Param id path int true "关键结果ID"
// @Success 200 {object} util.Response
// @Router /api/key-results/{id} [get]
func (c *KeyResultController) GetKeyResult(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.KeyResultService.GetKeyResult(ctx.Request.Context(), actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 更新关键结果生命周期
// @Tags 关键结果
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "关键结果ID"
// @Param lifecycle body service.UpdateLifecycleRequest true "生命周期"
// @Success 200 {object} util.Response
// @Router /api/key-results/{id}/lifecycle [patch]
func (c *KeyResultController) UpdateLifecycle(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateLifecycleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kr, err := c.KeyResultService.UpdateLifecycle(ctx.Request.Context(), actor, id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, kr)
}

// @Summary 删除关键结果
// @Tags 关键结果
// @Security BearerAuth
// @Param id path int true "关键结果ID"
// @Success 204
// @Router /api/key-results/{id} [delete]
func (c *KeyResultController) DeleteKeyResult(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.KeyResultService.DeleteKeyResult(ctx.Request.Context(), actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
