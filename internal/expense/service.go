package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/core/events"
)

type Repository interface {
	Create(entry *Expense) error
	GetByID(id int64) (*Expense, error)
	GetAll(limit, offset int) ([]*Expense, error)
	Update(entry *Expense) error
	Delete(id int64) error
	SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles expense business logic. The access pattern mirrors
// income: anggota cannot view, bendahara can record and correct entries.
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

func (s *Service) CreateEntry(ctx context.Context, role auth.Role, dto CreateExpenseDTO) (*Expense, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityExpense) {
		s.logger.Warn("expense create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entry := &Expense{
		Amount:      dto.Amount,
		Date:        dto.Date,
		Description: dto.Description,
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create expense entry", "error", err)
		return nil, internal.NewInternalError("failed to create expense entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeExpenseRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish expense event", "error", err, "entry_id", entry.ID)
		}
	}

	s.logger.Info("expense entry created", "entry_id", entry.ID, "amount", entry.Amount)
	return entry, nil
}

func (s *Service) GetEntry(role auth.Role, id int64) (*Expense, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityExpense) {
		return nil, internal.ErrActionForbidden
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrExpenseNotFound
	}
	return entry, nil
}

func (s *Service) ListEntries(role auth.Role, limit, offset int) ([]*Expense, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityExpense) {
		return nil, internal.ErrActionForbidden
	}

	entries, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list expense entries", "error", err)
		return nil, internal.NewInternalError("failed to list expense entries", err)
	}
	return entries, nil
}

func (s *Service) UpdateEntry(ctx context.Context, role auth.Role, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityExpense) {
		s.logger.Warn("expense update denied", "role", string(role), "entry_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrExpenseNotFound
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
		s.logger.Error("failed to update expense entry", "error", err, "entry_id", id)
		return nil, internal.NewInternalError("failed to update expense entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeExpenseRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish expense event", "error", err, "entry_id", entry.ID)
		}
	}

	return entry, nil
}

func (s *Service) DeleteEntry(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityExpense) {
		s.logger.Warn("expense delete denied", "role", string(role), "entry_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrExpenseNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense entry", "error", err, "entry_id", id)
		return internal.NewInternalError("failed to delete expense entry", err)
	}

	return nil
}
