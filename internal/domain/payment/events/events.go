package events

// 事件名，用于总线订阅
const (
	PaymentCompletedName = "payment.completed"
	PaymentFailedName    = "payment.failed"
)

// PaymentCompletedEvent 支付完成事件，事务提交后发布
type PaymentCompletedEvent struct {
	PaymentID uint
	OrderID   uint
	Amount    float64
}

func (PaymentCompletedEvent) Name() string { return PaymentCompletedName }

// PaymentFailedEvent 支付失败事件，事务提交后发布
type PaymentFailedEvent struct {
	PaymentID uint
	OrderID   uint
	Reason    string
}

func (PaymentFailedEvent) Name() string { return PaymentFailedName }
