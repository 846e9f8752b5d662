package kas

import (
	"context"
	"log/slog"
	"time"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/core/events"
)

// Repository defines the data access methods for kas entries
type Repository interface {
	Create(entry *Kas) error
	GetByID(id int64) (*Kas, error)
	GetAll(limit, offset int) ([]*Kas, error)
	GetByUserID(userID int64, limit, offset int) ([]*Kas, error)
	Update(entry *Kas) error
	Delete(id int64) error
	SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles kas business logic. Route middleware already gates access;
// the service re-checks the rule table so callers other than HTTP stay gated.
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

func (s *Service) CreateEntry(ctx context.Context, role auth.Role, dto CreateKasDTO) (*Kas, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityKas) {
		s.logger.Warn("kas create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entryType := dto.Type
	if entryType == "" {
		entryType = TypeInflow
	}

	entry := &Kas{
		UserID:     dto.UserID,
		ActivityID: dto.ActivityID,
		Amount:     dto.Amount,
		Date:       dto.Date,
		Type:       entryType,
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create kas entry", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create kas entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeKasRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish kas event", "error", err, "entry_id", entry.ID)
		}
	}

	s.logger.Info("kas entry created", "entry_id", entry.ID, "user_id", entry.UserID, "amount", entry.Amount)
	return entry, nil
}

func (s *Service) GetEntry(role auth.Role, id int64) (*Kas, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityKas) {
		return nil, internal.ErrActionForbidden
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrKasNotFound
	}
	return entry, nil
}

func (s *Service) ListEntries(role auth.Role, limit, offset int) ([]*Kas, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityKas) {
		return nil, internal.ErrActionForbidden
	}

	entries, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list kas entries", "error", err)
		return nil, internal.NewInternalError("failed to list kas entries", err)
	}
	return entries, nil
}

func (s *Service) ListMemberEntries(role auth.Role, userID int64, limit, offset int) ([]*Kas, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityKas) {
		return nil, internal.ErrActionForbidden
	}

	entries, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list member kas entries", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list kas entries", err)
	}
	return entries, nil
}

func (s *Service) UpdateEntry(ctx context.Context, role auth.Role, id int64, dto UpdateKasDTO) (*Kas, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityKas) {
		s.logger.Warn("kas update denied", "role", string(role), "entry_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrKasNotFound
	}

	if dto.ActivityID != nil {
		entry.ActivityID = dto.ActivityID
	}
	if dto.Amount != nil {
		entry.Amount = *dto.Amount
	}
	if dto.Date != nil {
		entry.Date = *dto.Date
	}
	if dto.Type != nil {
		entry.Type = *dto.Type
	}

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to update kas entry", "error", err, "entry_id", id)
		return nil, internal.NewInternalError("failed to update kas entry", err)
	}

	if s.publisher != nil {
		event := events.NewLedgerEntryRecorded(events.EventTypeKasRecorded, entry.ID, entry.Amount, entry.Date)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish kas event", "error", err, "entry_id", entry.ID)
		}
	}

	return entry, nil
}

func (s *Service) DeleteEntry(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityKas) {
		s.logger.Warn("kas delete denied", "role", string(role), "entry_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrKasNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete kas entry", "error", err, "entry_id", id)
		return internal.NewInternalError("failed to delete kas entry", err)
	}

	return nil
}
