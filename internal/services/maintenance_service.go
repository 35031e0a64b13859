package services

import (
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

// ReportIssueRequest opens a maintenance ticket.
type ReportIssueRequest struct {
	RoomID int64   `json:"roomId" binding:"required" validate:"min=1"`
	Issue  string  `json:"issue" binding:"required" validate:"required,max=2000"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateMaintenanceRequest changes a ticket. Absent fields are left alone.
type UpdateMaintenanceRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// MaintenanceService tracks room maintenance tickets.
type MaintenanceService interface {
	GetLogs(filters repositories.MaintenanceFilters) ([]models.RoomMaintenanceLog, error)
	ReportIssue(req ReportIssueRequest) (*models.RoomMaintenanceLog, error)
	UpdateLog(id int64, req UpdateMaintenanceRequest) (*models.RoomMaintenanceLog, error)
}

type maintenanceService struct {
	runner          repositories.TxRunner
	roomRepo        repositories.RoomRepository
	maintenanceRepo repositories.MaintenanceRepository
	now             func() time.Time
}

// NewMaintenanceService creates a new instance of MaintenanceService.
func NewMaintenanceService(runner repositories.TxRunner, roomRepo repositories.RoomRepository, maintenanceRepo repositories.MaintenanceRepository) MaintenanceService {
	return &maintenanceService{runner: runner, roomRepo: roomRepo, maintenanceRepo: maintenanceRepo, now: time.Now}
}

func (s *maintenanceService) GetLogs(filters repositories.MaintenanceFilters) ([]models.RoomMaintenanceLog, error) {
	if filters.Status != nil && !models.IsValidMaintenanceStatus(string(*filters.Status)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *filters.Status)
	}
	logs, err := s.maintenanceRepo.GetMaintenanceLogs(s.runner.Executor(), filters)
	if err != nil {
		return nil, repoError(err, nil, "listing maintenance logs")
	}
	return logs, nil
}

func (s *maintenanceService) ReportIssue(req ReportIssueRequest) (*models.RoomMaintenanceLog, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var entry *models.RoomMaintenanceLog
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		room, err := s.roomRepo.GetRoomByID(tx, req.RoomID, false)
		if err != nil {
			return err
		}
		entry = &models.RoomMaintenanceLog{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Issue:      req.Issue,
			Status:     models.MaintenanceStatusOpen,
			ReportedAt: s.now(),
		}
		if req.Notes != nil {
			entry.Notes = utils.NewNullString(*req.Notes)
		}
		return s.maintenanceRepo.CreateMaintenanceLog(tx, entry)
	})
	if err != nil {
		return nil, repoError(err, ErrRoomNotFound, "reporting maintenance issue")
	}
	log.Info().Int64("room_id", entry.RoomID).Int64("log_id", entry.ID).Msg("Maintenance issue reported")
	return entry, nil
}

func (s *maintenanceService) UpdateLog(id int64, req UpdateMaintenanceRequest) (*models.RoomMaintenanceLog, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var entry *models.RoomMaintenanceLog
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		entry, err = s.maintenanceRepo.GetMaintenanceLogByID(tx, id)
		if err != nil {
			return err
		}
		if req.Status != nil {
			next := models.MaintenanceStatus(*req.Status)
			switch {
			case next == models.MaintenanceStatusResolved && entry.Status != models.MaintenanceStatusResolved:
				resolvedAt := s.now()
				entry.ResolvedAt = &resolvedAt
			case next != models.MaintenanceStatusResolved:
				entry.ResolvedAt = nil
			}
			entry.Status = next
		}
		if req.Notes != nil {
			entry.Notes = utils.NewNullString(*req.Notes)
		}
		return s.maintenanceRepo.UpdateMaintenanceLog(tx, entry)
	})
	if err != nil {
		return nil, repoError(err, ErrMaintenanceNotFound, "updating maintenance log")
	}
	log.Info().Int64("log_id", id).Str("status", string(entry.Status)).Msg("Maintenance log updated")
	return entry, nil
}
