package income

import (
	"context"
	"log/slog"
	"time"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/core/events"
)

type Repository interface {
	Create(entry *Income) error
	GetByID(id int64) (*Income, error)
	GetAll(limit, offset int) ([]*Income, error)
	Update(entry *Income) error
	Delete(id int64) error
	SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles income business logic. Unlike kas, viewing income is
// restricted for the anggota role and updates are open to bendahara.
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) CreateEntry(ctx context.Context, role auth.Role, dto CreateIncomeDTO) (*Income, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityIncome) {
		s.logger.Warn("income create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entry := &Income{
		Amount:      dto.Amount,
		Date:        dto.Date,
		Description: dto.Description,
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create income entry", "error", err)
		return nil, internal.NewInternalError("failed to create income entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeIncomeRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish income event", "error", err, "entry_id", entry.ID)
		}
	}

	s.logger.Info("income entry created", "entry_id", entry.ID, "amount", entry.Amount)
	return entry, nil
}

func (s *Service) GetEntry(role auth.Role, id int64) (*Income, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityIncome) {
		return nil, internal.ErrActionForbidden
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrIncomeNotFound
	}
	return entry, nil
}

func (s *Service) ListEntries(role auth.Role, limit, offset int) ([]*Income, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityIncome) {
		return nil, internal.ErrActionForbidden
	}

	entries, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list income entries", "error", err)
		return nil, internal.NewInternalError("failed to list income entries", err)
	}
	return entries, nil
}

func (s *Service) UpdateEntry(ctx context.Context, role auth.Role, id int64, dto UpdateIncomeDTO) (*Income, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityIncome) {
		s.logger.Warn("income update denied", "role", string(role), "entry_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrIncomeNotFound
	}

	if dto.Amount != nil {
		entry.Amount = *dto.Amount
	}
	if dto.Date != nil {
		entry.Date = *dto.Date
	}
	if dto.Description != nil {
		entry.Description = *dto.Description
	}

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to update income entry", "error", err, "entry_id", id)
		return nil, internal.NewInternalError("failed to update income entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeIncomeRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish income event", "error", err, "entry_id", entry.ID)
		}
	}

	return entry, nil
}

func (s *Service) DeleteEntry(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityIncome) {
		s.logger.Warn("income delete denied", "role", string(role), "entry_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrIncomeNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete income entry", "error", err, "entry_id", id)
		return internal.NewInternalError("failed to delete income entry", err)
	}

	return nil
}
