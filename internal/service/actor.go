package service

import "okr_backend/internal/model"

// Actor 当前请求的用户
type Actor struct {
	UserID uint
	Role   model.UserRole
}

// canRead 本人、经理和管理员可以查看
func (a Actor) canRead(ownerID uint) bool {
	return a.UserID == ownerID || a.Role == model.Manager || a.Role == model.Admin
}

// canWrite 只有本人和管理员可以修改
func (a Actor) canWrite(ownerID uint) bool {
	return a.UserID == ownerID || a.Role == model.Admin
}
