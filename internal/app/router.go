package app

import (
	"okr_backend/internal/config"
	"okr_backend/internal/middleware"
	"okr_backend/internal/model"
	"okr_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCycleRoutes(authGroup, c)
		a.registerObjectiveRoutes(authGroup, c)
		a.registerProgressRoutes(authGroup, c)
	}
}

func (a *App) registerCycleRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/cycles", c.cycle.ListCycles)
	rg.GET("/cycles/:id", c.cycle.GetCycle)
	// 周期由日历管理方维护
	rg.POST("/cycles", middleware.RoleMiddleware(model.Manager), c.cycle.CreateCycle)
}

func (a *App) registerObjectiveRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/objectives", c.objective.CreateObjective)
	rg.GET("/objectives", c.objective.ListObjectives)
	rg.GET("/objectives/:id", c.objective.GetObjective)
	rg.GET("/objectives/:id/summary", c.objective.GetSummary)
	rg.POST("/objectives/:id/key-results", c.keyResult.CreateKeyResult)

	rg.GET("/key-results/:id", c.keyResult.GetKeyResult)
	rg.PATCH("/key-results/:id/lifecycle", c.keyResult.UpdateLifecycle)
	rg.DELETE("/key-results/:id", c.keyResult.DeleteKeyResult)
	rg.POST("/key-results/:id/check-ins", c.checkIn.RecordCheckIn)
	rg.GET("/key-results/:id/check-ins", c.checkIn.ListCheckIns)
}

func (a *App) registerProgressRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/progress/evaluate", c.progress.Evaluate)
	rg.POST("/progress/rollup", c.progress.Rollup)
	rg.GET("/progress/policy", c.progress.GetPolicy)
}
