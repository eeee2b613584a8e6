package model

import (
	"time"

	baseModel "laundry_lms/pkg/model"
)

// LaundryOrder 洗衣订单
// 订单生命周期 (Status) 与支付状态 (PaymentStatus) 相互独立：
// 支付相关字段只允许 payment 模块的对账服务修改
type LaundryOrder struct {
	baseModel.BaseModel
	CustomerID   uint       `gorm:"index;not null" json:"customerId"`
	ServiceType  string     `gorm:"not null" json:"serviceType"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	Price        float64    `json:"price"`
	PickupDate   *time.Time `json:"pickupDate,omitempty"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	Notes        string     `json:"notes"`
	Status       string     `gorm:"default:'PENDING'" json:"status"`
	// 支付字段
	PaymentMethod *string    `json:"paymentMethod,omitempty"` // COD / CARD，记录过支付意图后非空
	PaymentStatus string     `gorm:"default:'PENDING'" json:"paymentStatus"`
	PaidAt        *time.Time `json:"paidAt,omitempty"` // 仅在 PaymentStatus == PAID 时非空
}

// 订单生命周期状态
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusReady      = "READY"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// ValidStatus 校验订单生命周期状态
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
