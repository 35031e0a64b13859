package services

import (
	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// CreateStaffRequest DTO
type CreateStaffRequest struct {
	Name   string `json:"name" binding:"required" validate:"required,max=100"`
	Role   string `json:"role" binding:"required" validate:"required,max=50"`
	Avatar string `json:"avatar" validate:"max=16"`
}

// UpdateStaffRequest DTO
type UpdateStaffRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role   *string `json:"role" validate:"omitempty,min=1,max=50"`
	Avatar *string `json:"avatar" validate:"omitempty,max=16"`
}

// StaffService defines the interface for staff member management.
type StaffService interface {
	GetStaffMembers() ([]models.StaffMember, error)
	GetStaffMember(id int64) (*models.StaffMember, error)
	CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error)
	UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.StaffMember, error)
	DeleteStaffMember(id int64) error
}

type staffService struct {
	runner    repositories.TxRunner
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(runner repositories.TxRunner, staffRepo repositories.StaffRepository) StaffService {
	return &staffService{runner: runner, staffRepo: staffRepo}
}

func (s *staffService) GetStaffMembers() ([]models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMembers(s.runner.Executor())
	if err != nil {
		return nil, repoError(err, nil, "listing staff")
	}
	return staff, nil
}

func (s *staffService) GetStaffMember(id int64) (*models.StaffMember, error) {
	member, err := s.staffRepo.GetStaffMemberByID(s.runner.Executor(), id)
	if err != nil {
		return nil, repoError(err, ErrStaffNotFound, "getting staff member")
	}
	return member, nil
}

func (s *staffService) CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	member := &models.StaffMember{Name: req.Name, Role: req.Role, Avatar: req.Avatar}
	if err := s.staffRepo.CreateStaffMember(s.runner.Executor(), member); err != nil {
		return nil, repoError(err, nil, "creating staff member")
	}
	log.Info().Int64("staff_id", member.ID).Str("name", member.Name).Msg("Staff member created")
	return member, nil
}

func (s *staffService) UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.StaffMember, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var member *models.StaffMember
	err := s.runner.WithinTx(func(tx repositories.SQLExecutor) error {
		var err error
		member, err = s.staffRepo.GetStaffMemberByID(tx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			member.Name = *req.Name
		}
		if req.Role != nil {
			member.Role = *req.Role
		}
		if req.Avatar != nil {
			member.Avatar = *req.Avatar
		}
		return s.staffRepo.UpdateStaffMember(tx, member)
	})
	if err != nil {
		return nil, repoError(err, ErrStaffNotFound, "updating staff member")
	}
	return member, nil
}

func (s *staffService) DeleteStaffMember(id int64) error {
	// Attendance rows go with the member; linked users are unlinked by the schema.
	if err := s.staffRepo.DeleteStaffMember(s.runner.Executor(), id); err != nil {
		return repoError(err, ErrStaffNotFound, "deleting staff member")
	}
	log.Info().Int64("staff_id", id).Msg("Staff member deleted")
	return nil
}
