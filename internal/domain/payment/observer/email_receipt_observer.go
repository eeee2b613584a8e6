package observer

import (
	"laundry_lms/internal/domain/payment/events"
	pkgevents "laundry_lms/internal/pkg/events"
	"laundry_lms/pkg/logger"

	"go.uber.org/zap"
)

// EmailReceiptObserver 回执邮件观察者
// 只关心支付完成事件；通过总线的异步通道投递，不阻塞请求协程
type EmailReceiptObserver struct{}

func NewEmailReceiptObserver() *EmailReceiptObserver {
	return &EmailReceiptObserver{}
}

func (o *EmailReceiptObserver) OnPaymentCompleted(e pkgevents.Event) {
	evt, ok := e.(events.PaymentCompletedEvent)
	if !ok {
		return
	}

	// 实际发信走邮件网关，这里只记录投递
	logger.Log.Info("Email receipt sent",
		zap.Uint("payment_id", evt.PaymentID),
		zap.Uint("order_id", evt.OrderID),
		zap.Float64("amount", evt.Amount),
	)
}
