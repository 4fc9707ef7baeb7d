package controller

import (
	"okr_backend/internal/service"
	"okr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// actorFrom 从上下文读取当前用户，未登录时直接返回 401
func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return service.Actor{}, false
	}
	return service.Actor{UserID: user.UserID, Role: user.Role}, true
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParamID(ctx, name)
	if !ok {
		util.BadRequest(ctx, "Invalid "+name)
	}
	return id, ok
}
