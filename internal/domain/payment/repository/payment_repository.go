package repository

import (
	"errors"

	"laundry_lms/internal/domain/payment/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	// FindCurrentByOrderID 返回订单的当前支付记录（updated_at 最新的一行），
	// 没有记录时返回 (nil, nil)
	FindCurrentByOrderID(orderID uint) (*model.Payment, error)
	FindByStatus(status string) ([]model.Payment, error)
	Save(payment *model.Payment) error
	// WithTx 返回绑定到指定事务的仓储
	WithTx(tx *gorm.DB) PaymentRepository
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) FindCurrentByOrderID(orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("order_id = ?", orderID).Order("updated_at DESC").First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByStatus(status string) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("status = ?", status).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Save(payment *model.Payment) error {
	return r.db.Save(payment).Error
}
