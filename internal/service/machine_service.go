package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"optiops/internal/apierror"
	"optiops/internal/dto"
	"optiops/internal/model"
	"optiops/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// machineLogLimit caps the history slice returned with machine details.
const machineLogLimit = 10

const placeholderImagePath = "/images/machines/placeholder.jpg"

type MachineService interface {
	List(ctx context.Context) ([]dto.MachineResponse, error)
	// SetStatus normalizes rawStatus, applies the transition and appends an
	// audit row attributed to actorID. Returns the canonical status applied.
	SetStatus(ctx context.Context, machineID uint, rawStatus string, actorID uint) (model.MachineStatus, error)
	// ReportIssue appends an issue audit row; High/Critical severity forces
	// the machine Offline with a second row. Returns whether it was forced.
	ReportIssue(ctx context.Context, machineID uint, req dto.LogIssueRequest, actorID uint) (bool, error)
	GetDetails(ctx context.Context, machineID uint) (*dto.MachineDetails, error)
	Stats(ctx context.Context) (*dto.MachineStats, error)
}

type machineService struct {
	machines repository.MachineRepository
	logs     repository.MachineLogRepository
}

func NewMachineService(machines repository.MachineRepository, logs repository.MachineLogRepository) MachineService {
	return &machineService{machines: machines, logs: logs}
}

func (s *machineService) List(ctx context.Context) ([]dto.MachineResponse, error) {
	machines, err := s.machines.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MachineResponse, len(machines))
	for i, m := range machines {
		resp[i] = dto.MachineResponse{
			MachineID:   m.ID,
			MachineName: m.Name,
			MachineType: m.Type,
			Status:      m.Status.String(),
		}
	}
	return resp, nil
}

func (s *machineService) SetStatus(ctx context.Context, machineID uint, rawStatus string, actorID uint) (model.MachineStatus, error) {
	status, err := model.ParseMachineStatus(rawStatus)
	if err != nil {
		return "", apierror.InvalidStatus("Please select a valid status. Received: '%s'", rawStatus)
	}

	machine, err := s.machines.FindByID(ctx, machineID)
	if err != nil {
		return "", apierror.NotFound("Machine not found")
	}

	txErr := runTx(ctx, s.machines.DB(), func(tx *gorm.DB) error {
		machine.Status = status
		// The maintenance timestamp is touched on EVERY transition, including
		// leaving maintenance. Preserved observed behavior.
		machine.LastMaintenanceDate = time.Now()
		return s.machines.UpdateTx(tx, machine)
	})
	if txErr != nil {
		return "", txErr
	}

	// Audit row is best-effort and written after the status commit: a failed
	// insert inside the transaction would abort it on Postgres and take the
	// status write down with it.
	entry := &model.MachineLog{
		MachineID: machineID,
		Timestamp: time.Now(),
		Action:    fmt.Sprintf("Status updated to %s", status),
		UserID:    actorID,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Uint("machine_id", machineID).Msg("audit log insert failed, status update kept")
	}

	log.Info().
		Uint("machine_id", machineID).
		Str("status", status.String()).
		Uint("actor_id", actorID).
		Msg("machine status updated")

	return status, nil
}

func (s *machineService) ReportIssue(ctx context.Context, machineID uint, req dto.LogIssueRequest, actorID uint) (bool, error) {
	machine, err := s.machines.FindByID(ctx, machineID)
	if err != nil {
		return false, apierror.NotFound("Machine not found")
	}

	forceOffline := req.Severity == "High" || req.Severity == "Critical"

	txErr := runTx(ctx, s.machines.DB(), func(tx *gorm.DB) error {
		issueLog := &model.MachineLog{
			MachineID: machineID,
			Timestamp: time.Now(),
			Action:    fmt.Sprintf("Issue Reported - %s (Severity: %s): %s", req.IssueType, req.Severity, req.Description),
			UserID:    actorID,
		}
		if err := s.logs.CreateTx(tx, issueLog); err != nil {
			return err
		}

		if !forceOffline {
			return nil
		}

		machine.Status = model.StatusOffline
		if err := s.machines.UpdateTx(tx, machine); err != nil {
			return err
		}

		statusLog := &model.MachineLog{
			MachineID: machineID,
			Timestamp: time.Now(),
			Action:    fmt.Sprintf("Status Changed to Offline - Due to %s severity issue: %s", strings.ToLower(req.Severity), req.IssueType),
			UserID:    actorID,
		}
		return s.logs.CreateTx(tx, statusLog)
	})
	if txErr != nil {
		return false, txErr
	}

	log.Info().
		Uint("machine_id", machineID).
		Str("severity", req.Severity).
		Bool("forced_offline", forceOffline).
		Msg("machine issue logged")

	return forceOffline, nil
}

func (s *machineService) GetDetails(ctx context.Context, machineID uint) (*dto.MachineDetails, error) {
	machine, err := s.machines.FindByID(ctx, machineID)
	if err != nil {
		return nil, apierror.NotFound("Machine not found")
	}

	history, err := s.logs.LastN(ctx, machineID, machineLogLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.MachineLogEntry, len(history))
	for i, l := range history {
		performedBy := "Unknown User"
		if l.User != nil {
			performedBy = l.User.Username
		}
		entries[i] = dto.MachineLogEntry{
			Date:        l.Timestamp.Format("2006-01-02"),
			Action:      l.Action,
			PerformedBy: performedBy,
		}
	}

	imagePath := placeholderImagePath
	if machine.ImagePath != nil && *machine.ImagePath != "" {
		imagePath = *machine.ImagePath
	}

	return &dto.MachineDetails{
		Success:            true,
		MachineID:          machine.ID,
		MachineName:        machine.Name,
		MachineType:        machine.Type,
		Status:             machine.Status.String(),
		LastMaintenance:    machine.LastMaintenanceDate.Format("2006-01-02"),
		ImagePath:          imagePath,
		MaintenanceHistory: entries,
	}, nil
}

func (s *machineService) Stats(ctx context.Context) (*dto.MachineStats, error) {
	stats := &dto.MachineStats{}
	var err error
	if stats.Operational, err = s.machines.CountByStatus(ctx, model.StatusOperational); err != nil {
		return nil, err
	}
	if stats.UnderMaintenance, err = s.machines.CountByStatus(ctx, model.StatusUnderMaintenance); err != nil {
		return nil, err
	}
	if stats.Offline, err = s.machines.CountByStatus(ctx, model.StatusOffline); err != nil {
		return nil, err
	}
	stats.TotalMachines = stats.Operational + stats.UnderMaintenance + stats.Offline
	return stats, nil
}
