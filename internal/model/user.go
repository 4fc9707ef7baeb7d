package model

// UserRole 身份由外部用户系统签发的 JWT 提供，这里只保留角色
type UserRole string

const (
	Member  UserRole = "member"
	Manager UserRole = "manager"
	Admin   UserRole = "admin"
)
