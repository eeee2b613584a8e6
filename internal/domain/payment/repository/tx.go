package repository

import (
	"errors"

	orderRepo "laundry_lms/internal/domain/order/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrConflict 存储层并发写冲突（序列化失败 / 死锁），调用方可重试整个读改写流程
var ErrConflict = errors.New("storage conflict")

// Repos 事务内可用的仓储集合
type Repos struct {
	Orders   orderRepo.OrderRepository
	Payments PaymentRepository
}

// TxManager 把订单和支付的读改写包在同一个数据库事务里执行。
// fn 返回错误则整体回滚，对外不可见任何变更
type TxManager interface {
	WithinTx(fn func(r Repos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithinTx(fn func(r Repos) error) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Orders:   orderRepo.NewOrderRepository(tx),
			Payments: NewPaymentRepository(tx),
		})
	})
	return mapConflict(err)
}

// mapConflict 将 postgres 的序列化失败 / 死锁映射为 ErrConflict
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return ErrConflict
		}
	}
	return err
}
