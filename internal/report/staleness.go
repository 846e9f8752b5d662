package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/core/events"
)

// StalenessWatcher listens for ledger writes and reports which saved
// monthly reports now show outdated totals. Reports are snapshots, so
// the watcher never rewrites them; it only makes the drift visible.
type StalenessWatcher struct {
	repo   Repository
	logger *slog.Logger
}

func NewStalenessWatcher(repo Repository, logger *slog.Logger) *StalenessWatcher {
	return &StalenessWatcher{
		repo:   repo,
		logger: logger,
	}
}

// Register attaches the watcher to every ledger event type.
func (w *StalenessWatcher) Register(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventTypeKasRecorded,
		events.EventTypeIncomeRecorded,
		events.EventTypeExpenseRecorded,
	} {
		bus.Subscribe(eventType, w.HandleLedgerEvent)
	}
}

func (w *StalenessWatcher) HandleLedgerEvent(ctx context.Context, event events.Event) error {
	recorded, ok := event.(*events.LedgerEntryRecorded)
	if !ok {
		return nil
	}

	// Handlers run in their own goroutines; bound the lookup.
	ctx, cancel := internal.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stale, err := w.StaleReports(ctx, recorded.EntryDate)
	if err != nil {
		return err
	}

	for _, rep := range stale {
		w.logger.Warn("saved report totals are stale",
			"report_id", rep.ID,
			"report_title", rep.Title,
			"entry_date", recorded.EntryDate.Format("2006-01-02"),
			"event_type", event.EventType(),
		)
	}
	return nil
}

// StaleReports returns the saved reports whose period contains the given
// entry date.
func (w *StalenessWatcher) StaleReports(ctx context.Context, date time.Time) ([]*MonthlyReport, error) {
	return w.repo.GetByPeriodContaining(ctx, date)
}
