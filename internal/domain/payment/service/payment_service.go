package service

import (
	"errors"
	"time"

	orderModel "laundry_lms/internal/domain/order/model"
	"laundry_lms/internal/domain/payment/events"
	"laundry_lms/internal/domain/payment/model"
	"laundry_lms/internal/domain/payment/repository"
	"laundry_lms/internal/domain/payment/strategy"
	pkgevents "laundry_lms/internal/pkg/events"
)

// ErrUnsupportedMethod 未注册的支付方式
var ErrUnsupportedMethod = errors.New("unsupported payment method")

// EventPublisher 事务提交后的事件出口
type EventPublisher interface {
	Publish(e pkgevents.Event)
}

// PaymentService 支付对账服务：唯一允许同时修改订单支付字段和支付记录的入口。
// 每个操作都是一个原子读改写——订单更新、支付记录 upsert 要么一起落库，
// 要么都不可见；事件只在事务提交之后发布
type PaymentService interface {
	ConfirmCOD(orderID uint) (*orderModel.LaundryOrder, *strategy.Checkout, error)
	CreateDemoCheckout(orderID uint) (*strategy.Checkout, error)
	MarkCardPaid(orderID uint, providerRef string, amount float64) error
	MarkFailed(orderID uint, reason string) error
	RegisterStrategy(s strategy.PaymentStrategy)
}

type paymentService struct {
	tx         repository.TxManager
	bus        EventPublisher
	strategies map[string]strategy.PaymentStrategy
}

func NewPaymentService(tx repository.TxManager, bus EventPublisher) PaymentService {
	return &paymentService{
		tx:         tx,
		bus:        bus,
		strategies: make(map[string]strategy.PaymentStrategy),
	}
}

// RegisterStrategy 注册支付策略
func (s *paymentService) RegisterStrategy(st strategy.PaymentStrategy) {
	s.strategies[st.Method()] = st
}

// ConfirmCOD 确认货到付款
// 订单与当前支付记录都置为 PENDING/COD，不发事件（现金在配送时线下结清）
func (s *paymentService) ConfirmCOD(orderID uint) (*orderModel.LaundryOrder, *strategy.Checkout, error) {
	st, ok := s.strategies[model.MethodCOD]
	if !ok {
		return nil, nil, ErrUnsupportedMethod
	}

	var updated *orderModel.LaundryOrder
	err := s.withRetry(func(r repository.Repos, pending *[]pkgevents.Event) error {
		order, err := r.Orders.FindByID(orderID)
		if err != nil {
			return err
		}
		amount := order.Price

		payment, err := s.currentOrNew(r, orderID)
		if err != nil {
			return err
		}
		payment.Method = model.MethodCOD
		payment.Status = model.StatusPending
		payment.Provider = model.ProviderCash
		payment.ProviderRef = nil
		payment.Amount = amount
		if err := r.Payments.Save(payment); err != nil {
			return err
		}

		method := model.MethodCOD
		order.PaymentMethod = &method
		order.PaymentStatus = model.StatusPending
		order.PaidAt = nil
		if err := r.Orders.Save(order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	checkout, err := st.Checkout(updated.ID, updated.Price)
	if err != nil {
		return nil, nil, err
	}
	return updated, checkout, nil
}

// CreateDemoCheckout 生成演示收银台跳转描述，只读，不修改任何存储状态
func (s *paymentService) CreateDemoCheckout(orderID uint) (*strategy.Checkout, error) {
	st, ok := s.strategies[model.MethodCard]
	if !ok {
		return nil, ErrUnsupportedMethod
	}

	var amount float64
	err := s.tx.WithinTx(func(r repository.Repos) error {
		order, err := r.Orders.FindByID(orderID)
		if err != nil {
			return err
		}
		amount = order.Price
		return nil
	})
	if err != nil {
		return nil, err
	}

	return st.Checkout(orderID, amount)
}

// MarkCardPaid 刷卡支付成功（webhook success）
// 金额解析：入参 > 0 用入参，否则回退到订单价格，再退到 0。
// 可重复调用：同一 providerRef 再次结算只会原地更新当前支付记录
func (s *paymentService) MarkCardPaid(orderID uint, providerRef string, amount float64) error {
	return s.withRetry(func(r repository.Repos, pending *[]pkgevents.Event) error {
		order, err := r.Orders.FindByID(orderID)
		if err != nil {
			return err
		}

		resolved := amount
		if resolved <= 0 {
			resolved = order.Price
		}
		if resolved < 0 {
			resolved = 0
		}

		payment, err := s.currentOrNew(r, orderID)
		if err != nil {
			return err
		}
		payment.Method = model.MethodCard
		payment.Status = model.StatusPaid
		payment.Provider = model.ProviderDemo
		payment.ProviderRef = &providerRef
		payment.Amount = resolved
		if err := r.Payments.Save(payment); err != nil {
			return err
		}

		now := time.Now()
		method := model.MethodCard
		order.PaymentMethod = &method
		order.PaymentStatus = model.StatusPaid
		order.PaidAt = &now
		if err := r.Orders.Save(order); err != nil {
			return err
		}

		*pending = append(*pending, events.PaymentCompletedEvent{
			PaymentID: payment.ID,
			OrderID:   orderID,
			Amount:    resolved,
		})
		return nil
	})
}

// MarkFailed 刷卡支付失败（webhook failure）
// 没有支付记录时懒创建一条：金额取订单价格，方式默认 CARD
func (s *paymentService) MarkFailed(orderID uint, reason string) error {
	return s.withRetry(func(r repository.Repos, pending *[]pkgevents.Event) error {
		order, err := r.Orders.FindByID(orderID)
		if err != nil {
			return err
		}

		payment, err := r.Payments.FindCurrentByOrderID(orderID)
		if err != nil {
			return err
		}
		if payment == nil {
			payment = &model.Payment{
				OrderID: orderID,
				Amount:  order.Price,
				Method:  model.MethodCard,
			}
		}
		ref := "FAILED"
		payment.Status = model.StatusFailed
		payment.Provider = model.ProviderDemo
		payment.ProviderRef = &ref
		if err := r.Payments.Save(payment); err != nil {
			return err
		}

		if payment.Method != "" {
			method := payment.Method
			order.PaymentMethod = &method
		}
		order.PaymentStatus = model.StatusFailed
		order.PaidAt = nil
		if err := r.Orders.Save(order); err != nil {
			return err
		}

		*pending = append(*pending, events.PaymentFailedEvent{
			PaymentID: payment.ID,
			OrderID:   orderID,
			Reason:    reason,
		})
		return nil
	})
}

// currentOrNew 取订单的当前支付记录，没有则准备一条新记录
func (s *paymentService) currentOrNew(r repository.Repos, orderID uint) (*model.Payment, error) {
	payment, err := r.Payments.FindCurrentByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		payment = &model.Payment{OrderID: orderID}
	}
	return payment, nil
}

// withRetry 在一个事务内执行 op，提交成功后发布收集到的事件。
// 并发写冲突时整体重试一次，仍冲突则把 ErrConflict 交给调用方
func (s *paymentService) withRetry(op func(r repository.Repos, pending *[]pkgevents.Event) error) error {
	var pending []pkgevents.Event

	attempt := func() error {
		pending = nil
		return s.tx.WithinTx(func(r repository.Repos) error {
			return op(r, &pending)
		})
	}

	err := attempt()
	if errors.Is(err, repository.ErrConflict) {
		err = attempt()
	}
	if err != nil {
		return err
	}

	for _, e := range pending {
		s.bus.Publish(e)
	}
	return nil
}
