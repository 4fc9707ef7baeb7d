package controller

import (
	"context"
	"net/http"
	"okr_backend/internal/service"
	"okr_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthController 报告数据库、汇总缓存状态以及当前生效的节奏阈值。
// 数据库不可用返回 503；Redis 不可用时汇总只是变慢，返回 degraded。
type HealthController struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Progress *service.ProgressService
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, progressService *service.ProgressService) *HealthController {
	return &HealthController{DB: db, Redis: rdb, Progress: progressService}
}

// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthPingTimeout)
	defer cancel()

	database := c.databaseStatus(pingCtx)
	cache := c.cacheStatus(pingCtx)

	status := "ok"
	if cache == "down" {
		status = "degraded"
	}

	data := gin.H{
		"status": status,
		"components": gin.H{
			"database": database,
			"cache":    cache,
		},
	}
	if c.Progress != nil {
		data["policy"] = c.Progress.Policy()
	}

	if database != "up" {
		data["status"] = "down"
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Database unavailable",
			Data:    data,
		})
		return
	}
	util.Success(ctx, data)
}

func (c *HealthController) databaseStatus(ctx context.Context) string {
	if c.DB == nil {
		return "down"
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return "down"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "down"
	}
	return "up"
}

// 未启用 Redis 时汇总走进程内 LRU
func (c *HealthController) cacheStatus(ctx context.Context) string {
	if c.Redis == nil {
		return "local"
	}
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		return "down"
	}
	return "up"
}
