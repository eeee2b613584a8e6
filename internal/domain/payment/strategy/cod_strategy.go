package strategy

import (
	"fmt"

	"laundry_lms/internal/domain/payment/model"
	"laundry_lms/internal/pkg/config"
)

// CODStrategy 货到付款
// 没有收银台，确认后直接跳回用户面板，货款在配送时线下结清
type CODStrategy struct{}

func NewCODStrategy() *CODStrategy {
	return &CODStrategy{}
}

func (s *CODStrategy) Method() string {
	return model.MethodCOD
}

func (s *CODStrategy) Checkout(orderID uint, amount float64) (*Checkout, error) {
	return &Checkout{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    config.GlobalConfig.Payment.Currency,
		RedirectURL: fmt.Sprintf("/frontend/dashboard-user.html?cod=1&orderId=%d", orderID),
	}, nil
}
