package activity

import (
	"log/slog"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
)

type Repository interface {
	Create(act *Activity) error
	GetByID(id int64) (*Activity, error)
	GetByName(name string) (*Activity, error)
	GetAll(limit, offset int) ([]*Activity, error)
	Update(act *Activity) error
	Delete(id int64) error
}

// Service handles activity business logic. Activities are readable by
// every authenticated member; only admin manages them.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateActivity(role auth.Role, dto CreateActivityDTO) (*Activity, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityActivity) {
		s.logger.Warn("activity create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewConflictError("activity with this name already exists", internal.ErrCodeDuplicateActivity)
	}

	act := &Activity{
		Name:        dto.Name,
		Description: dto.Description,
		Date:        dto.Date,
		Location:    dto.Location,
	}

	if err := s.repo.Create(act); err != nil {
		s.logger.Error("failed to create activity", "error", err)
		return nil, internal.NewInternalError("failed to create activity", err)
	}

	s.logger.Info("activity created", "activity_id", act.ID, "name", act.Name)
	return act, nil
}

func (s *Service) GetActivity(role auth.Role, id int64) (*Activity, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityActivity) {
		return nil, internal.ErrActionForbidden
	}

	act, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrActivityNotFound
	}
	return act, nil
}

func (s *Service) ListActivities(role auth.Role, limit, offset int) ([]*Activity, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityActivity) {
		return nil, internal.ErrActionForbidden
	}

	activities, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list activities", "error", err)
		return nil, internal.NewInternalError("failed to list activities", err)
	}
	return activities, nil
}

func (s *Service) UpdateActivity(role auth.Role, id int64, dto UpdateActivityDTO) (*Activity, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityActivity) {
		s.logger.Warn("activity update denied", "role", string(role), "activity_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	act, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrActivityNotFound
	}

	if dto.Name != nil {
		act.Name = *dto.Name
	}
	if dto.Description != nil {
		act.Description = *dto.Description
	}
	if dto.Date != nil {
		act.Date = *dto.Date
	}
	if dto.Location != nil {
		act.Location = *dto.Location
	}

	if err := s.repo.Update(act); err != nil {
		s.logger.Error("failed to update activity", "error", err, "activity_id", id)
		return nil, internal.NewInternalError("failed to update activity", err)
	}

	return act, nil
}

func (s *Service) DeleteActivity(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityActivity) {
		s.logger.Warn("activity delete denied", "role", string(role), "activity_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrActivityNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete activity", "error", err, "activity_id", id)
		return internal.NewInternalError("failed to delete activity", err)
	}

	return nil
}
