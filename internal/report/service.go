package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/core/events"
)

type Repository interface {
	Create(rep *MonthlyReport) error
	GetByID(id int64) (*MonthlyReport, error)
	GetAll(limit, offset int) ([]*MonthlyReport, error)
	GetByPeriodContaining(ctx context.Context, date time.Time) ([]*MonthlyReport, error)
	Update(rep *MonthlyReport) error
	Delete(id int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles monthly report business logic. Totals are computed by
// the aggregator at create time and whenever a period bound changes;
// everything else edits the snapshot in place.
type Service struct {
	repo       Repository
	aggregator *Aggregator
	publisher  EventPublisher
	logger     *slog.Logger
}

func NewService(repo Repository, aggregator *Aggregator, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *Service) CreateReport(ctx context.Context, role auth.Role, dto CreateReportDTO) (*MonthlyReport, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityReport) {
		s.logger.Warn("report create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rep := &MonthlyReport{
		Title:       dto.Title,
		ReportDate:  dto.ReportDate,
		PeriodStart: dto.PeriodStart,
		PeriodEnd:   dto.PeriodEnd,
		Notes:       dto.Notes,
	}

	totals, computed, err := s.aggregator.RecomputeIfComplete(ctx, rep.PeriodStart, rep.PeriodEnd)
	if err != nil {
		s.logger.Error("failed to aggregate report totals", "error", err)
		return nil, internal.NewInternalError("failed to aggregate report totals", err)
	}
	if computed {
		rep.TotalKas = totals.TotalKas
		rep.TotalIncome = totals.TotalIncome
		rep.TotalExpense = totals.TotalExpense
		rep.RemainingBalance = totals.RemainingBalance
	}

	if err := s.repo.Create(rep); err != nil {
		s.logger.Error("failed to create report", "error", err)
		return nil, internal.NewInternalError("failed to create report", err)
	}

	s.publishSaved(ctx, rep)
	s.logger.Info("report created", "report_id", rep.ID, "title", rep.Title)
	return rep, nil
}

func (s *Service) GetReport(role auth.Role, id int64) (*MonthlyReport, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityReport) {
		return nil, internal.ErrActionForbidden
	}

	rep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrReportNotFound
	}
	return rep, nil
}

func (s *Service) ListReports(role auth.Role, limit, offset int) ([]*MonthlyReport, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityReport) {
		return nil, internal.ErrActionForbidden
	}

	reports, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list reports", "error", err)
		return nil, internal.NewInternalError("failed to list reports", err)
	}
	return reports, nil
}

// PreviewTotals aggregates a period without saving anything. It backs
// the dry-run endpoint treasurers use before committing a report.
func (s *Service) PreviewTotals(ctx context.Context, role auth.Role, start, end time.Time) (PeriodTotals, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityReport) {
		return PeriodTotals{}, internal.ErrActionForbidden
	}

	totals, err := s.aggregator.Recompute(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to aggregate preview totals", "error", err)
		return PeriodTotals{}, internal.NewInternalError("failed to aggregate preview totals", err)
	}
	return totals, nil
}

func (s *Service) UpdateReport(ctx context.Context, role auth.Role, id int64, dto UpdateReportDTO) (*MonthlyReport, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityReport) {
		s.logger.Warn("report update denied", "role", string(role), "report_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrReportNotFound
	}

	boundsChanged := false
	if dto.Title != nil {
		rep.Title = *dto.Title
	}
	if dto.ReportDate != nil {
		rep.ReportDate = *dto.ReportDate
	}
	if dto.PeriodStart != nil {
		rep.PeriodStart = dto.PeriodStart
		boundsChanged = true
	}
	if dto.PeriodEnd != nil {
		rep.PeriodEnd = dto.PeriodEnd
		boundsChanged = true
	}
	if dto.Notes != nil {
		rep.Notes = *dto.Notes
	}

	if boundsChanged {
		totals, computed, err := s.aggregator.RecomputeIfComplete(ctx, rep.PeriodStart, rep.PeriodEnd)
		if err != nil {
			s.logger.Error("failed to aggregate report totals", "error", err, "report_id", id)
			return nil, internal.NewInternalError("failed to aggregate report totals", err)
		}
		if computed {
			rep.TotalKas = totals.TotalKas
			rep.TotalIncome = totals.TotalIncome
			rep.TotalExpense = totals.TotalExpense
			rep.RemainingBalance = totals.RemainingBalance
		}
	}

	if err := s.repo.Update(rep); err != nil {
		s.logger.Error("failed to update report", "error", err, "report_id", id)
		return nil, internal.NewInternalError("failed to update report", err)
	}

	s.publishSaved(ctx, rep)
	return rep, nil
}

func (s *Service) DeleteReport(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityReport) {
		s.logger.Warn("report delete denied", "role", string(role), "report_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrReportNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete report", "error", err, "report_id", id)
		return internal.NewInternalError("failed to delete report", err)
	}

	return nil
}

func (s *Service) publishSaved(ctx context.Context, rep *MonthlyReport) {
	if s.publisher == nil || rep.PeriodStart == nil || rep.PeriodEnd == nil {
		return
	}
	event := events.NewReportSaved(rep.ID, *rep.PeriodStart, *rep.PeriodEnd)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish report event", "error", err, "report_id", rep.ID)
	}
}
