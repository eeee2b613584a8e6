package model

import (
	baseModel "laundry_lms/pkg/model"
)

// User 用户模型（顾客 / 管理员）
type User struct {
	baseModel.BaseModel
	Username string `gorm:"unique;not null" json:"username"`
	Password string `json:"-"` // 密码不返回给前端
	Email    string `gorm:"unique" json:"email"`
	FullName string `json:"fullName"`
	Role     int    `gorm:"default:1" json:"role"`
}

const (
	RoleUser  = 1
	RoleAdmin = 2
)
