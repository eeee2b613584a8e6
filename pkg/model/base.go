package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 基础模型，自增数字主键 + 时间戳
// 订单和支付记录对外直接暴露数字 ID
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}
