package repository

import (
	"context"

	"optiops/internal/dto"
	"optiops/internal/model"

	"gorm.io/gorm"
)

type MachineRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Machine, error)
	List(ctx context.Context) ([]model.Machine, error)
	Update(ctx context.Context, m *model.Machine) error
	UpdateTx(tx *gorm.DB, m *model.Machine) error
	CountByStatus(ctx context.Context, status model.MachineStatus) (int64, error)
	TypeSummary(ctx context.Context) ([]dto.MachineTypeSummary, error)
	// DB exposes the underlying handle for transaction scoping; nil in
	// unit tests backed by stubs.
	DB() *gorm.DB
}

type machineRepo struct{ db *gorm.DB }

func NewMachineRepository(db *gorm.DB) MachineRepository { return &machineRepo{db: db} }

func (r *machineRepo) FindByID(ctx context.Context, id uint) (*model.Machine, error) {
	var m model.Machine
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *machineRepo) List(ctx context.Context) ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.WithContext(ctx).Order("name").Find(&machines).Error
	return machines, err
}

func (r *machineRepo) Update(ctx context.Context, m *model.Machine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *machineRepo) UpdateTx(tx *gorm.DB, m *model.Machine) error {
	return tx.Save(m).Error
}

func (r *machineRepo) CountByStatus(ctx context.Context, status model.MachineStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Machine{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// TypeSummary groups the fleet by machine type with a per-status breakdown.
// The conditional counts run in one pass over the table.
func (r *machineRepo) TypeSummary(ctx context.Context) ([]dto.MachineTypeSummary, error) {
	var rows []dto.MachineTypeSummary
	err := r.db.WithContext(ctx).Model(&model.Machine{}).
		Select(`type AS machine_type,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS operational,
			COUNT(*) FILTER (WHERE status = ?) AS under_maintenance,
			COUNT(*) FILTER (WHERE status = ?) AS offline`,
			model.StatusOperational, model.StatusUnderMaintenance, model.StatusOffline).
		Group("type").
		Order("type").
		Scan(&rows).Error
	return rows, err
}

func (r *machineRepo) DB() *gorm.DB { return r.db }
