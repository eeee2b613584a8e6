package observer

import (
	"laundry_lms/internal/domain/payment/events"
	pkgevents "laundry_lms/internal/pkg/events"
	"laundry_lms/pkg/logger"
	"laundry_lms/pkg/metrics"

	"go.uber.org/zap"
)

// FinanceObserver 财务观察者
// 支付完成后记账：写结算日志并上报结算指标
type FinanceObserver struct{}

func NewFinanceObserver() *FinanceObserver {
	return &FinanceObserver{}
}

func (o *FinanceObserver) OnPaymentCompleted(e pkgevents.Event) {
	evt, ok := e.(events.PaymentCompletedEvent)
	if !ok {
		return
	}

	metrics.Default.RecordSettlement("paid", evt.Amount)
	logger.Log.Info("Finance ledger updated",
		zap.Uint("order_id", evt.OrderID),
		zap.Uint("payment_id", evt.PaymentID),
		zap.Float64("amount", evt.Amount),
	)
}
