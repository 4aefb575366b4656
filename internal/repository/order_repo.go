package repository

import (
	"context"
	"time"

	"optiops/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerOrderRepository interface {
	Create(ctx context.Context, o *model.CustomerOrder) error
	// SumTotalAmount with zero times sums the whole table (lifetime revenue).
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
	SumTotalAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	Recent(ctx context.Context, n int) ([]model.CustomerOrder, error)
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
}

type ProductionOrderRepository interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
}

// ── CustomerOrder ─────────────────────────────────────────────────────────────

type customerOrderRepo struct{ db *gorm.DB }

func NewCustomerOrderRepository(db *gorm.DB) CustomerOrderRepository {
	return &customerOrderRepo{db: db}
}

func (r *customerOrderRepo) Create(ctx context.Context, o *model.CustomerOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// decimalSum scans SUM(total_amount) results. COALESCE keeps an empty range
// at zero instead of NULL.
type decimalSum struct {
	Total decimal.Decimal
}

func (r *customerOrderRepo) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var row decimalSum
	err := r.db.WithContext(ctx).Model(&model.CustomerOrder{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}

func (r *customerOrderRepo) SumTotalAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row decimalSum
	err := r.db.WithContext(ctx).Model(&model.CustomerOrder{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("order_date >= ? AND order_date < ?", from, to).
		Scan(&row).Error
	return row.Total, err
}

func (r *customerOrderRepo) Recent(ctx context.Context, n int) ([]model.CustomerOrder, error) {
	var orders []model.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		Order("order_date DESC").
		Limit(n).
		Find(&orders).Error
	return orders, err
}

func (r *customerOrderRepo) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CustomerOrder{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n > 0, err
}

// ── ProductionOrder ───────────────────────────────────────────────────────────

type productionOrderRepo struct{ db *gorm.DB }

func NewProductionOrderRepository(db *gorm.DB) ProductionOrderRepository {
	return &productionOrderRepo{db: db}
}

func (r *productionOrderRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductionOrder{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *productionOrderRepo) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductionOrder{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n > 0, err
}
