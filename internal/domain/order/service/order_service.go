package service

import (
	"errors"
	"fmt"
	"time"

	catalogService "laundry_lms/internal/domain/catalog/service"
	"laundry_lms/internal/domain/order/model"
	"laundry_lms/internal/domain/order/repository"
	userService "laundry_lms/internal/domain/user/service"
)

var (
	ErrInvalidService = errors.New("invalid service type")
	ErrInvalidUnit    = errors.New("invalid unit")
	ErrInvalidStatus  = errors.New("invalid order status")
)

// CreateOrderInput 下单参数
type CreateOrderInput struct {
	CustomerID   uint
	ServiceType  string
	Quantity     float64
	Unit         string
	Price        float64
	PickupDate   *time.Time
	DeliveryDate *time.Time
	Notes        string
	Status       string
}

type OrderService interface {
	Create(input CreateOrderInput) (*model.LaundryOrder, string, error)
	Get(id uint) (*model.LaundryOrder, error)
	List(customerID uint) ([]model.LaundryOrder, error)
	UpdateStatus(id uint, status string) (*model.LaundryOrder, error)
	Delete(id uint) error
}

type orderService struct {
	repo    repository.OrderRepository
	catalog catalogService.CatalogService
	users   userService.UserService
}

func NewOrderService(repo repository.OrderRepository, catalog catalogService.CatalogService, users userService.UserService) OrderService {
	return &orderService{repo: repo, catalog: catalog, users: users}
}

// Create 创建订单，返回订单和支付页跳转路径
// 支付字段初始化为 PENDING / 未选择方式，后续只由支付对账服务修改
func (s *orderService) Create(input CreateOrderInput) (*model.LaundryOrder, string, error) {
	if !s.catalog.IsValidService(input.ServiceType) {
		return nil, "", ErrInvalidService
	}
	if !s.catalog.IsValidUnit(input.Unit) {
		return nil, "", ErrInvalidUnit
	}
	if _, err := s.users.GetUser(input.CustomerID); err != nil {
		return nil, "", err
	}

	status := model.StatusPending
	if input.Status != "" {
		if !model.ValidStatus(input.Status) {
			return nil, "", ErrInvalidStatus
		}
		status = input.Status
	}

	order := &model.LaundryOrder{
		CustomerID:    input.CustomerID,
		ServiceType:   input.ServiceType,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		Price:         input.Price,
		PickupDate:    input.PickupDate,
		DeliveryDate:  input.DeliveryDate,
		Notes:         input.Notes,
		Status:        status,
		PaymentStatus: model.StatusPending,
		PaymentMethod: nil,
		PaidAt:        nil,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, "", err
	}

	next := fmt.Sprintf("/frontend/pay.html?orderId=%d", order.ID)
	return order, next, nil
}

func (s *orderService) Get(id uint) (*model.LaundryOrder, error) {
	return s.repo.FindByID(id)
}

// List 查询订单列表，customerID 为 0 时返回全部
func (s *orderService) List(customerID uint) ([]model.LaundryOrder, error) {
	if customerID != 0 {
		return s.repo.FindByCustomerID(customerID)
	}
	return s.repo.FindAll()
}

// UpdateStatus 更新订单生命周期状态，不触碰支付字段
func (s *orderService) UpdateStatus(id uint, status string) (*model.LaundryOrder, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.repo.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(id uint) error {
	return s.repo.Delete(id)
}
