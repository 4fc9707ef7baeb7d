package controller

import (
	"okr_backend/internal/progress"
	"okr_backend/internal/service"
	"okr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 无状态计算接口，供报表等调用方直接使用
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type RollupRequest struct {
	Results []progress.Result `json:"results"`
}

// @Summary 计算单个关键结果
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.EvaluateRequest true "计算输入"
// @Success 200 {object} util.Response
// @Router /api/progress/evaluate [post]
func (c *ProgressController) Evaluate(ctx *gin.Context) {
	var req service.EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.ProgressService.EvaluateInput(ctx.Request.Context(), req))
}

// @Summary 汇总多个关键结果
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body RollupRequest true "结果列表"
// @Success 200 {object} util.Response
// @Router /api/progress/rollup [post]
func (c *ProgressController) Rollup(ctx *gin.Context) {
	var req RollupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, progress.Rollup(req.Results))
}

// @Summary 当前节奏阈值
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress/policy [get]
func (c *ProgressController) GetPolicy(ctx *gin.Context) {
	util.Success(ctx, c.ProgressService.Policy())
}
