package strategy

import (
	"fmt"
	"strconv"

	"laundry_lms/internal/domain/payment/model"
	"laundry_lms/internal/pkg/config"
)

// DemoCardStrategy 模拟刷卡收银台
// 跳转到本地演示页面，结果由 /payments/demo/webhook 回调
type DemoCardStrategy struct{}

func NewDemoCardStrategy() *DemoCardStrategy {
	return &DemoCardStrategy{}
}

func (s *DemoCardStrategy) Method() string {
	return model.MethodCard
}

func (s *DemoCardStrategy) Checkout(orderID uint, amount float64) (*Checkout, error) {
	cfg := config.GlobalConfig.Payment
	amountParam := strconv.FormatFloat(amount, 'f', -1, 64)
	url := fmt.Sprintf("%s?orderId=%d&amount=%s&currency=%s",
		cfg.CheckoutPage, orderID, amountParam, cfg.Currency)

	return &Checkout{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    cfg.Currency,
		RedirectURL: url,
	}, nil
}
