package model

import (
	baseModel "laundry_lms/pkg/model"
)

// Payment 支付记录，一笔结算尝试
// 一个订单同一时刻只有一条"当前"支付记录：updated_at 最新的那一行。
// 重复确认或重试会原地更新当前记录，而不是新增行
type Payment struct {
	baseModel.BaseModel
	OrderID     uint    `gorm:"index;not null" json:"orderId"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"` // COD / CARD
	Status      string  `gorm:"default:'PENDING'" json:"status"`
	Provider    string  `json:"provider"` // CASH / DEMO
	ProviderRef *string `json:"providerRef,omitempty"`
}

// 支付状态
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
)

// 支付方式
const (
	MethodCOD  = "COD"
	MethodCard = "CARD"
)

// 支付来源
const (
	ProviderCash = "CASH"
	ProviderDemo = "DEMO"
)
