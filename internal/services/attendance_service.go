package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// ShiftResult is returned by StartShift and EndShift. Repeating either call on
// the same day is not an error: the record comes back unchanged with a flag set.
type ShiftResult struct {
	Record            *models.AttendanceRecord `json:"record"`
	AlreadyCheckedIn  bool                     `json:"alreadyCheckedIn,omitempty"`
	AlreadyCheckedOut bool                     `json:"alreadyCheckedOut,omitempty"`
	Message           string                   `json:"message"`
}

// ShiftStatus describes today's shift for a user.
type ShiftStatus struct {
	HasShift    bool                     `json:"hasShift"`
	Record      *models.AttendanceRecord `json:"shift,omitempty"`
	IsActive    bool                     `json:"isActive"`
	HoursWorked float64                  `json:"hoursWorked"`
}

// MarkAttendanceRequest lets a manager set a day's status for a staff member.
type MarkAttendanceRequest struct {
	StaffID int64  `json:"staffId" binding:"required" validate:"min=1"`
	Date    string `json:"date" binding:"required" validate:"required,datetime=2006-01-02"`
	Status  string `json:"status" binding:"required" validate:"oneof=PRESENT ABSENT LEAVE LATE"`
}

// AttendanceService is the per-staff daily check-in/check-out engine.
type AttendanceService interface {
	StartShift(userID int64) (*ShiftResult, error)
	EndShift(userID int64) (*ShiftResult, error)
	GetShiftStatus(userID int64) (*ShiftStatus, error)
	ListAttendance(filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error)
	MarkAttendance(req MarkAttendanceRequest) (*models.AttendanceRecord, error)
}

type attendanceService struct {
	runner    repositories.TxRunner
	staffRepo repositories.StaffRepository
	authRepo  repositories.AuthRepository
	loc       *time.Location
	now       func() time.Time
}

// NewAttendanceService creates a new instance of AttendanceService. Days are
// cut at midnight in loc.
func NewAttendanceService(runner repositories.TxRunner, staffRepo repositories.StaffRepository, authRepo repositories.AuthRepository, loc *time.Location) AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &attendanceService{runner: runner, staffRepo: staffRepo, authRepo: authRepo, loc: loc, now: time.Now}
}

// today returns local midnight for the current instant.
func (s *attendanceService) today() time.Time {
	return truncateToDay(s.now(), s.loc)
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// staffIDFor resolves the staff member linked to a user account.
func (s *attendanceService) staffIDFor(ex repositories.SQLExecutor, userID int64) (int64, error) {
	user, err := s.authRepo.FindUserByID(ex, userID)
	if err != nil {
		return 0, repoError(err, ErrUserNotFound, "resolving user")
	}
	if user.StaffID == nil {
		return 0, ErrStaffLinkNotFound
	}
	if _, err := s.staffRepo.GetStaffMemberByID(ex, *user.StaffID); err != nil {
		return 0, repoError(err, ErrStaffLinkNotFound, "resolving staff member")
	}
	return *user.StaffID, nil
}

func (s *attendanceService) StartShift(userID int64) (*ShiftResult, error) {
	result := &ShiftResult{}
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		staffID, err := s.staffIDFor(tx, userID)
		if err != nil {
			return err
		}
		now := s.now()
		day := s.today()

		record, err := s.staffRepo.GetAttendance(tx, staffID, day, true)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			record = &models.AttendanceRecord{
				StaffID: staffID,
				Date:    day,
				Status:  models.AttendancePresent,
				CheckIn: &now,
			}
			if err := s.staffRepo.CreateAttendance(tx, record); err != nil {
				return repoError(err, nil, "creating attendance record")
			}
			result.Message = "Shift started successfully"
		case err != nil:
			return repoError(err, nil, "loading attendance record")
		case record.CheckIn != nil:
			result.AlreadyCheckedIn = true
			result.Message = "Shift already started"
		default:
			// A manager may have marked the day before the user clocked in.
			record.CheckIn = &now
			record.Status = models.AttendancePresent
			if err := s.staffRepo.UpdateAttendance(tx, record); err != nil {
				return repoError(err, nil, "updating attendance record")
			}
			result.Message = "Shift started successfully"
		}
		result.Record = record
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrDuplicateAttendance
		}
		return nil, err
	}
	if !result.AlreadyCheckedIn {
		log.Info().Int64("user_id", userID).Int64("staff_id", result.Record.StaffID).Msg("Shift started")
	}
	return result, nil
}

func (s *attendanceService) EndShift(userID int64) (*ShiftResult, error) {
	result := &ShiftResult{}
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		staffID, err := s.staffIDFor(tx, userID)
		if err != nil {
			return err
		}
		record, err := s.staffRepo.GetAttendance(tx, staffID, s.today(), true)
		if err != nil {
			return repoError(err, ErrNoActiveShift, "loading attendance record")
		}
		if record.CheckIn == nil {
			return ErrNoActiveShift
		}
		if record.CheckOut != nil {
			result.Record = record
			result.AlreadyCheckedOut = true
			result.Message = "Shift already ended"
			return nil
		}
		now := s.now()
		record.CheckOut = &now
		if err := s.staffRepo.UpdateAttendance(tx, record); err != nil {
			return repoError(err, nil, "updating attendance record")
		}
		result.Record = record
		result.Message = "Shift ended successfully"
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.AlreadyCheckedOut {
		log.Info().Int64("user_id", userID).Int64("staff_id", result.Record.StaffID).Msg("Shift ended")
	}
	return result, nil
}

func (s *attendanceService) GetShiftStatus(userID int64) (*ShiftStatus, error) {
	ex := s.runner.Executor()
	staffID, err := s.staffIDFor(ex, userID)
	if err != nil {
		return nil, err
	}
	record, err := s.staffRepo.GetAttendance(ex, staffID, s.today(), false)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ShiftStatus{HasShift: false}, nil
	}
	if err != nil {
		return nil, repoError(err, nil, "loading attendance record")
	}
	return &ShiftStatus{
		HasShift:    true,
		Record:      record,
		IsActive:    record.IsActive(),
		HoursWorked: hoursWorked(record, s.now()),
	}, nil
}

// hoursWorked is checkIn to checkOut (or now while active), rounded to two decimals.
func hoursWorked(record *models.AttendanceRecord, now time.Time) float64 {
	if record.CheckIn == nil {
		return 0
	}
	end := now
	if record.CheckOut != nil {
		end = *record.CheckOut
	}
	hours := end.Sub(*record.CheckIn).Hours()
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

func (s *attendanceService) ListAttendance(filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	if filters.From != nil {
		from := truncateToDay(*filters.From, s.loc)
		filters.From = &from
	}
	if filters.To != nil {
		to := truncateToDay(*filters.To, s.loc)
		filters.To = &to
	}
	records, err := s.staffRepo.GetAttendanceRecords(s.runner.Executor(), filters)
	if err != nil {
		return nil, repoError(err, nil, "listing attendance")
	}
	return records, nil
}

// MarkAttendance sets the status of a day, creating the record when needed.
// Check-in and check-out times are left as they are.
func (s *attendanceService) MarkAttendance(req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrValidation, err)
	}

	var record *models.AttendanceRecord
	err = s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		if _, err := s.staffRepo.GetStaffMemberByID(tx, req.StaffID); err != nil {
			return repoError(err, ErrStaffNotFound, "loading staff member")
		}
		record, err = s.staffRepo.GetAttendance(tx, req.StaffID, day, true)
		if errors.Is(err, repositories.ErrNotFound) {
			record = &models.AttendanceRecord{StaffID: req.StaffID, Date: day, Status: models.AttendanceStatus(req.Status)}
			return repoError(s.staffRepo.CreateAttendance(tx, record), nil, "creating attendance record")
		}
		if err != nil {
			return repoError(err, nil, "loading attendance record")
		}
		record.Status = models.AttendanceStatus(req.Status)
		return repoError(s.staffRepo.UpdateAttendance(tx, record), nil, "updating attendance record")
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrDuplicateAttendance
		}
		return nil, err
	}
	log.Info().Int64("staff_id", req.StaffID).Str("date", req.Date).Str("status", req.Status).Msg("Attendance marked")
	return record, nil
}
