package repository

import (
	"context"

	"optiops/internal/model"

	"gorm.io/gorm"
)

type MachineLogRepository interface {
	Create(ctx context.Context, l *model.MachineLog) error
	CreateTx(tx *gorm.DB, l *model.MachineLog) error
	// LastN returns the newest n audit rows for a machine, actor preloaded.
	LastN(ctx context.Context, machineID uint, n int) ([]model.MachineLog, error)
}

type machineLogRepo struct{ db *gorm.DB }

func NewMachineLogRepository(db *gorm.DB) MachineLogRepository { return &machineLogRepo{db: db} }

func (r *machineLogRepo) Create(ctx context.Context, l *model.MachineLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *machineLogRepo) CreateTx(tx *gorm.DB, l *model.MachineLog) error {
	return tx.Create(l).Error
}

func (r *machineLogRepo) LastN(ctx context.Context, machineID uint, n int) ([]model.MachineLog, error) {
	var logs []model.MachineLog
	err := r.db.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Preload("User").
		Order("timestamp DESC").
		Limit(n).
		Find(&logs).Error
	return logs, err
}
