package strategy

// Checkout 收银描述，告诉前端下一步跳转到哪里
type Checkout struct {
	OrderID     uint    `json:"orderId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RedirectURL string  `json:"redirectUrl"`
}

// PaymentStrategy 支付方式策略
// 只负责生成收银/跳转描述，不做任何外部网络调用
type PaymentStrategy interface {
	Method() string
	Checkout(orderID uint, amount float64) (*Checkout, error)
}
