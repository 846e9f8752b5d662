package report

import (
	"context"
	"time"
)

// AmountSummer sums ledger amounts over a closed date interval.
type AmountSummer interface {
	SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

// PeriodTotals is the financial summary of one reporting period. All
// amounts are whole rupiah.
type PeriodTotals struct {
	TotalKas         int64 `json:"total_kas"`
	TotalIncome      int64 `json:"total_income"`
	TotalExpense     int64 `json:"total_expense"`
	RemainingBalance int64 `json:"remaining_balance"`
}

// Aggregator recomputes period totals from the three ledger sources. It
// holds no state of its own; every call reads current data.
type Aggregator struct {
	kas     AmountSummer
	income  AmountSummer
	expense AmountSummer
}

func NewAggregator(kas, income, expense AmountSummer) *Aggregator {
	return &Aggregator{
		kas:     kas,
		income:  income,
		expense: expense,
	}
}

// Recompute sums kas, income, and expense over [start, end], endpoints
// inclusive. An inverted interval matches nothing and yields all zeros
// rather than an error. Storage failures propagate unchanged: a failed
// sum must never read as a zero balance.
func (a *Aggregator) Recompute(ctx context.Context, start, end time.Time) (PeriodTotals, error) {
	if start.After(end) {
		return PeriodTotals{}, nil
	}

	totalKas, err := a.kas.SumAmountBetween(ctx, start, end)
	if err != nil {
		return PeriodTotals{}, err
	}

	totalIncome, err := a.income.SumAmountBetween(ctx, start, end)
	if err != nil {
		return PeriodTotals{}, err
	}

	totalExpense, err := a.expense.SumAmountBetween(ctx, start, end)
	if err != nil {
		return PeriodTotals{}, err
	}

	return PeriodTotals{
		TotalKas:         totalKas,
		TotalIncome:      totalIncome,
		TotalExpense:     totalExpense,
		RemainingBalance: totalKas + totalIncome - totalExpense,
	}, nil
}

// RecomputeIfComplete runs Recompute only when both period bounds are
// set. A report with an open-ended period keeps whatever totals it has.
func (a *Aggregator) RecomputeIfComplete(ctx context.Context, start, end *time.Time) (PeriodTotals, bool, error) {
	if start == nil || end == nil {
		return PeriodTotals{}, false, nil
	}

	totals, err := a.Recompute(ctx, *start, *end)
	if err != nil {
		return PeriodTotals{}, false, err
	}
	return totals, true, nil
}
