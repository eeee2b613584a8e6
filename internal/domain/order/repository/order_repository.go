package repository

import (
	"errors"

	"laundry_lms/internal/domain/order/model"

	"gorm.io/gorm"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(order *model.LaundryOrder) error
	FindByID(id uint) (*model.LaundryOrder, error)
	FindAll() ([]model.LaundryOrder, error)
	FindByCustomerID(customerID uint) ([]model.LaundryOrder, error)
	Save(order *model.LaundryOrder) error
	Delete(id uint) error
	// WithTx 返回绑定到指定事务的仓储
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(order *model.LaundryOrder) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) FindByID(id uint) (*model.LaundryOrder, error) {
	var order model.LaundryOrder
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.LaundryOrder, error) {
	var orders []model.LaundryOrder
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByCustomerID(customerID uint) ([]model.LaundryOrder, error) {
	var orders []model.LaundryOrder
	if err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Save(order *model.LaundryOrder) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) Delete(id uint) error {
	res := r.db.Delete(&model.LaundryOrder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
