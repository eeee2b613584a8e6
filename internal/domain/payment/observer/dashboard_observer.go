package observer

import (
	"context"
	"strconv"
	"time"

	"laundry_lms/internal/domain/payment/events"
	"laundry_lms/internal/domain/payment/model"
	pkgevents "laundry_lms/internal/pkg/events"
	"laundry_lms/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dashboardKey 面板实时支付状态的 Redis hash
const dashboardKey = "dashboard:payment_status"

// DashboardObserver 面板观察者
// 支付到达 PAID / FAILED 时更新 Redis 中的实时状态，供面板展示
type DashboardObserver struct {
	rdb *redis.Client
}

func NewDashboardObserver(rdb *redis.Client) *DashboardObserver {
	return &DashboardObserver{rdb: rdb}
}

func (o *DashboardObserver) OnPaymentCompleted(e pkgevents.Event) {
	evt, ok := e.(events.PaymentCompletedEvent)
	if !ok {
		return
	}
	o.record(evt.OrderID, model.StatusPaid)
	logger.Log.Info("Dashboard: PAID", zap.Uint("order_id", evt.OrderID))
}

func (o *DashboardObserver) OnPaymentFailed(e pkgevents.Event) {
	evt, ok := e.(events.PaymentFailedEvent)
	if !ok {
		return
	}
	o.record(evt.OrderID, model.StatusFailed)
	logger.Log.Info("Dashboard: FAILED", zap.Uint("order_id", evt.OrderID))
}

func (o *DashboardObserver) record(orderID uint, status string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()

	field := strconv.FormatUint(uint64(orderID), 10)
	if err := o.rdb.HSet(ctx, dashboardKey, field, status).Err(); err != nil {
		logger.Log.Warn("Failed to update dashboard status",
			zap.Uint("order_id", orderID), zap.Error(err))
	}
}
