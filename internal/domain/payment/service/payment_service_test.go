package service

import (
	"errors"
	"os"
	"testing"

	orderModel "laundry_lms/internal/domain/order/model"
	orderRepo "laundry_lms/internal/domain/order/repository"
	"laundry_lms/internal/domain/payment/events"
	"laundry_lms/internal/domain/payment/model"
	"laundry_lms/internal/domain/payment/repository"
	"laundry_lms/internal/domain/payment/strategy"
	"laundry_lms/internal/pkg/config"
	pkgevents "laundry_lms/internal/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	config.GlobalConfig.Payment = config.PaymentConfig{
		Currency:     "LKR",
		CheckoutPage: "/pay/demo-checkout.html",
	}
	os.Exit(m.Run())
}

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *orderModel.LaundryOrder) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(id uint) (*orderModel.LaundryOrder, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.LaundryOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll() ([]orderModel.LaundryOrder, error) {
	args := m.Called()
	return args.Get(0).([]orderModel.LaundryOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(customerID uint) ([]orderModel.LaundryOrder, error) {
	args := m.Called(customerID)
	return args.Get(0).([]orderModel.LaundryOrder), args.Error(1)
}

func (m *MockOrderRepository) Save(order *orderModel.LaundryOrder) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOrderRepository) WithTx(tx *gorm.DB) orderRepo.OrderRepository {
	return m
}

// MockPaymentRepository is a mock of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindCurrentByOrderID(orderID uint) (*model.Payment, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByStatus(status string) ([]model.Payment, error) {
	args := m.Called(status)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(payment *model.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) WithTx(tx *gorm.DB) repository.PaymentRepository {
	return m
}

// fakeTxManager hands the mock repos to the closure; it can simulate
// commit failures and transient conflicts
type fakeTxManager struct {
	repos     repository.Repos
	commitErr error
	conflicts int
	calls     int
}

func (m *fakeTxManager) WithinTx(fn func(r repository.Repos) error) error {
	m.calls++
	if m.conflicts > 0 {
		m.conflicts--
		return repository.ErrConflict
	}
	if err := fn(m.repos); err != nil {
		return err
	}
	return m.commitErr
}

// recordingPublisher collects published events
type recordingPublisher struct {
	published []pkgevents.Event
}

func (p *recordingPublisher) Publish(e pkgevents.Event) {
	p.published = append(p.published, e)
}

type fixture struct {
	orders   *MockOrderRepository
	payments *MockPaymentRepository
	tx       *fakeTxManager
	bus      *recordingPublisher
	service  PaymentService
}

func newFixture() *fixture {
	orders := new(MockOrderRepository)
	payments := new(MockPaymentRepository)
	tx := &fakeTxManager{repos: repository.Repos{Orders: orders, Payments: payments}}
	bus := &recordingPublisher{}

	svc := NewPaymentService(tx, bus)
	svc.RegisterStrategy(strategy.NewCODStrategy())
	svc.RegisterStrategy(strategy.NewDemoCardStrategy())

	return &fixture{orders: orders, payments: payments, tx: tx, bus: bus, service: svc}
}

func testOrder(id uint, price float64) *orderModel.LaundryOrder {
	order := &orderModel.LaundryOrder{
		CustomerID:    1,
		ServiceType:   "WASH",
		Price:         price,
		Status:        orderModel.StatusPending,
		PaymentStatus: model.StatusPending,
	}
	order.ID = id
	return order
}

func TestConfirmCOD(t *testing.T) {
	t.Run("Creates pending COD payment and emits no event", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(nil, nil)
		f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Run(func(args mock.Arguments) {
			p := args.Get(0).(*model.Payment)
			if p.ID == 0 {
				p.ID = 101
			}
		}).Return(nil)
		f.orders.On("Save", mock.AnythingOfType("*model.LaundryOrder")).Return(nil)

		updated, checkout, err := f.service.ConfirmCOD(7)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, updated.PaymentStatus)
		assert.NotNil(t, updated.PaymentMethod)
		assert.Equal(t, model.MethodCOD, *updated.PaymentMethod)
		assert.Nil(t, updated.PaidAt)
		assert.Contains(t, checkout.RedirectURL, "cod=1&orderId=7")
		assert.Empty(t, f.bus.published)

		savedPayment := f.payments.Calls[1].Arguments.Get(0).(*model.Payment)
		assert.Equal(t, model.MethodCOD, savedPayment.Method)
		assert.Equal(t, model.StatusPending, savedPayment.Status)
		assert.Equal(t, model.ProviderCash, savedPayment.Provider)
		assert.Nil(t, savedPayment.ProviderRef)
		assert.Equal(t, 1500.0, savedPayment.Amount)
		f.orders.AssertExpectations(t)
		f.payments.AssertExpectations(t)
	})

	t.Run("Switch to COD after failed card attempt reuses current row", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)
		order.PaymentStatus = model.StatusFailed

		existing := &model.Payment{OrderID: 7, Method: model.MethodCard, Status: model.StatusFailed, Provider: model.ProviderDemo}
		existing.ID = 55

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(existing, nil)
		f.payments.On("Save", existing).Return(nil)
		f.orders.On("Save", order).Return(nil)

		updated, _, err := f.service.ConfirmCOD(7)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, updated.PaymentStatus)
		assert.Equal(t, uint(55), existing.ID)
		assert.Equal(t, model.MethodCOD, existing.Method)
		assert.Equal(t, model.StatusPending, existing.Status)
		assert.Equal(t, model.ProviderCash, existing.Provider)
		assert.Empty(t, f.bus.published)
	})

	t.Run("Unknown order leaves stores untouched", func(t *testing.T) {
		f := newFixture()
		f.orders.On("FindByID", uint(99)).Return(nil, orderRepo.ErrOrderNotFound)

		_, _, err := f.service.ConfirmCOD(99)

		assert.ErrorIs(t, err, orderRepo.ErrOrderNotFound)
		assert.Empty(t, f.bus.published)
		f.payments.AssertNotCalled(t, "Save", mock.Anything)
		f.orders.AssertNotCalled(t, "Save", mock.Anything)
	})
}

func TestCreateDemoCheckout(t *testing.T) {
	t.Run("Read only redirect with order amount", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)

		f.orders.On("FindByID", uint(7)).Return(order, nil)

		checkout, err := f.service.CreateDemoCheckout(7)

		assert.NoError(t, err)
		assert.Equal(t, 1500.0, checkout.Amount)
		assert.Contains(t, checkout.RedirectURL, "orderId=7")
		assert.Contains(t, checkout.RedirectURL, "amount=1500")
		assert.Contains(t, checkout.RedirectURL, "currency=LKR")
		f.payments.AssertNotCalled(t, "Save", mock.Anything)
		f.orders.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newFixture()
		f.orders.On("FindByID", uint(42)).Return(nil, orderRepo.ErrOrderNotFound)

		_, err := f.service.CreateDemoCheckout(42)

		assert.ErrorIs(t, err, orderRepo.ErrOrderNotFound)
	})
}

func TestMarkCardPaid(t *testing.T) {
	t.Run("Settles order and emits completed event after commit", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)
		existing := &model.Payment{OrderID: 7, Method: model.MethodCOD, Status: model.StatusPending, Provider: model.ProviderCash, Amount: 1500}
		existing.ID = 55

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(existing, nil)
		f.payments.On("Save", existing).Return(nil)
		f.orders.On("Save", order).Return(nil)

		err := f.service.MarkCardPaid(7, "ref-99", 1500)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPaid, order.PaymentStatus)
		assert.NotNil(t, order.PaidAt)
		assert.Equal(t, model.MethodCard, *order.PaymentMethod)

		// 仍是同一行
		assert.Equal(t, uint(55), existing.ID)
		assert.Equal(t, model.MethodCard, existing.Method)
		assert.Equal(t, model.StatusPaid, existing.Status)
		assert.Equal(t, model.ProviderDemo, existing.Provider)
		assert.Equal(t, "ref-99", *existing.ProviderRef)
		assert.Equal(t, 1500.0, existing.Amount)

		assert.Len(t, f.bus.published, 1)
		evt, ok := f.bus.published[0].(events.PaymentCompletedEvent)
		assert.True(t, ok)
		assert.Equal(t, uint(55), evt.PaymentID)
		assert.Equal(t, uint(7), evt.OrderID)
		assert.Equal(t, 1500.0, evt.Amount)
	})

	t.Run("Idempotent re-settlement keeps one row and same values", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)
		existing := &model.Payment{OrderID: 7}
		existing.ID = 55

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(existing, nil)
		f.payments.On("Save", existing).Return(nil)
		f.orders.On("Save", order).Return(nil)

		assert.NoError(t, f.service.MarkCardPaid(7, "ref-99", 1500))
		assert.NoError(t, f.service.MarkCardPaid(7, "ref-99", 1500))

		assert.Equal(t, uint(55), existing.ID)
		assert.Equal(t, model.StatusPaid, existing.Status)
		assert.Equal(t, 1500.0, existing.Amount)
		assert.Len(t, f.bus.published, 2)
	})

	t.Run("Non-positive amount falls back to order price", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			f := newFixture()
			order := testOrder(3, 800)

			f.orders.On("FindByID", uint(3)).Return(order, nil)
			f.payments.On("FindCurrentByOrderID", uint(3)).Return(nil, nil)
			f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Run(func(args mock.Arguments) {
				p := args.Get(0).(*model.Payment)
				p.ID = 77
			}).Return(nil)
			f.orders.On("Save", order).Return(nil)

			err := f.service.MarkCardPaid(3, "ref-1", amount)

			assert.NoError(t, err)
			evt := f.bus.published[0].(events.PaymentCompletedEvent)
			assert.Equal(t, 800.0, evt.Amount)
		}
	})

	t.Run("Zero amount and zero price settles at zero", func(t *testing.T) {
		f := newFixture()
		order := testOrder(4, 0)

		f.orders.On("FindByID", uint(4)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(4)).Return(nil, nil)
		f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Return(nil)
		f.orders.On("Save", order).Return(nil)

		err := f.service.MarkCardPaid(4, "ref-0", 0)

		assert.NoError(t, err)
		evt := f.bus.published[0].(events.PaymentCompletedEvent)
		assert.Equal(t, 0.0, evt.Amount)
	})

	t.Run("Commit failure publishes nothing", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(nil, nil)
		f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Return(nil)
		f.orders.On("Save", order).Return(nil)
		f.tx.commitErr = errors.New("commit failed")

		err := f.service.MarkCardPaid(7, "ref-99", 1500)

		assert.Error(t, err)
		assert.Empty(t, f.bus.published)
	})

	t.Run("Retries once on storage conflict", func(t *testing.T) {
		f := newFixture()
		order := testOrder(7, 1500)

		f.orders.On("FindByID", uint(7)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(7)).Return(nil, nil)
		f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Return(nil)
		f.orders.On("Save", order).Return(nil)
		f.tx.conflicts = 1

		err := f.service.MarkCardPaid(7, "ref-99", 1500)

		assert.NoError(t, err)
		assert.Equal(t, 2, f.tx.calls)
		assert.Len(t, f.bus.published, 1)
	})

	t.Run("Repeated conflict surfaces to caller", func(t *testing.T) {
		f := newFixture()
		f.tx.conflicts = 2

		err := f.service.MarkCardPaid(7, "ref-99", 1500)

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Equal(t, 2, f.tx.calls)
		assert.Empty(t, f.bus.published)
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newFixture()
		f.orders.On("FindByID", uint(99)).Return(nil, orderRepo.ErrOrderNotFound)

		err := f.service.MarkCardPaid(99, "ref", 100)

		assert.ErrorIs(t, err, orderRepo.ErrOrderNotFound)
		assert.Empty(t, f.bus.published)
		f.payments.AssertNotCalled(t, "Save", mock.Anything)
	})
}

func TestMarkFailed(t *testing.T) {
	t.Run("Lazily creates failed payment with order price", func(t *testing.T) {
		f := newFixture()
		order := testOrder(9, 800)

		f.orders.On("FindByID", uint(9)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(9)).Return(nil, nil)
		f.payments.On("Save", mock.AnythingOfType("*model.Payment")).Run(func(args mock.Arguments) {
			p := args.Get(0).(*model.Payment)
			p.ID = 88
		}).Return(nil)
		f.orders.On("Save", order).Return(nil)

		err := f.service.MarkFailed(9, "card-declined")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusFailed, order.PaymentStatus)
		assert.Nil(t, order.PaidAt)
		assert.Equal(t, model.MethodCard, *order.PaymentMethod)

		saved := f.payments.Calls[1].Arguments.Get(0).(*model.Payment)
		assert.Equal(t, model.StatusFailed, saved.Status)
		assert.Equal(t, model.MethodCard, saved.Method)
		assert.Equal(t, 800.0, saved.Amount)
		assert.Equal(t, model.ProviderDemo, saved.Provider)
		assert.Equal(t, "FAILED", *saved.ProviderRef)

		assert.Len(t, f.bus.published, 1)
		evt, ok := f.bus.published[0].(events.PaymentFailedEvent)
		assert.True(t, ok)
		assert.Equal(t, uint(88), evt.PaymentID)
		assert.Equal(t, uint(9), evt.OrderID)
		assert.Equal(t, "card-declined", evt.Reason)
	})

	t.Run("Clears paid_at when failing a paid order", func(t *testing.T) {
		f := newFixture()
		order := testOrder(9, 800)
		order.PaymentStatus = model.StatusPaid
		paidAt := order.CreatedAt
		order.PaidAt = &paidAt

		existing := &model.Payment{OrderID: 9, Method: model.MethodCard, Status: model.StatusPaid, Amount: 800}
		existing.ID = 21

		f.orders.On("FindByID", uint(9)).Return(order, nil)
		f.payments.On("FindCurrentByOrderID", uint(9)).Return(existing, nil)
		f.payments.On("Save", existing).Return(nil)
		f.orders.On("Save", order).Return(nil)

		err := f.service.MarkFailed(9, "chargeback")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusFailed, order.PaymentStatus)
		assert.Nil(t, order.PaidAt)
		assert.Equal(t, model.StatusFailed, existing.Status)
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newFixture()
		f.orders.On("FindByID", uint(99)).Return(nil, orderRepo.ErrOrderNotFound)

		err := f.service.MarkFailed(99, "demo-failed")

		assert.ErrorIs(t, err, orderRepo.ErrOrderNotFound)
		assert.Empty(t, f.bus.published)
	})
}
