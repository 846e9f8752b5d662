package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeKasRecorded     = "kas.recorded"
	EventTypeIncomeRecorded  = "income.recorded"
	EventTypeExpenseRecorded = "expense.recorded"
	EventTypeReportSaved     = "report.saved"
)

// LedgerEntryRecorded fires when a kas, income, or expense row is written.
// Saved monthly reports are snapshots and are never invalidated by these
// events; subscribers only surface which reports went stale.
type LedgerEntryRecorded struct {
	BaseEvent
	EntryID   int64     `json:"entry_id"`
	Amount    int64     `json:"amount"`
	EntryDate time.Time `json:"entry_date"`
}

func NewLedgerEntryRecorded(eventType string, entryID, amount int64, entryDate time.Time) *LedgerEntryRecorded {
	return &LedgerEntryRecorded{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entry_id":   entryID,
				"amount":     amount,
				"entry_date": entryDate,
			},
		},
		EntryID:   entryID,
		Amount:    amount,
		EntryDate: entryDate,
	}
}

type ReportSaved struct {
	BaseEvent
	ReportID  int64     `json:"report_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func NewReportSaved(reportID int64, startDate, endDate time.Time) *ReportSaved {
	return &ReportSaved{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeReportSaved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"report_id":  reportID,
				"start_date": startDate,
				"end_date":   endDate,
			},
		},
		ReportID:  reportID,
		StartDate: startDate,
		EndDate:   endDate,
	}
}
