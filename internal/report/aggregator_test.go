package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mputra/treasury-management/internal/report"
)

func TestReport(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Report Module Suite")
}

type ledgerEntry struct {
	date   time.Time
	amount int64
}

// mockSummer replays a fixed ledger; sumError simulates storage failure.
type mockSummer struct {
	entries  []ledgerEntry
	sumError error
	calls    int
}

func (m *mockSummer) SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	m.calls++
	if m.sumError != nil {
		return 0, m.sumError
	}
	var total int64
	for _, e := range m.entries {
		if !e.date.Before(start) && !e.date.After(end) {
			total += e.amount
		}
	}
	return total, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = ginkgo.Describe("Aggregator", func() {
	var (
		kasSummer     *mockSummer
		incomeSummer  *mockSummer
		expenseSummer *mockSummer
		aggregator    *report.Aggregator
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		kasSummer = &mockSummer{entries: []ledgerEntry{
			{date(2024, 10, 10), 5000},
			{date(2024, 11, 20), 5000},
			{date(2024, 12, 1), 5000},
		}}
		incomeSummer = &mockSummer{entries: []ledgerEntry{
			{date(2024, 10, 15), 20000},
		}}
		expenseSummer = &mockSummer{entries: []ledgerEntry{
			{date(2024, 11, 5), 7000},
		}}
		aggregator = report.NewAggregator(kasSummer, incomeSummer, expenseSummer)
		ctx = context.Background()
	})

	ginkgo.Describe("Recompute", func() {
		ginkgo.It("should sum only entries inside an October window", func() {
			totals, err := aggregator.Recompute(ctx, date(2024, 10, 1), date(2024, 10, 31))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals.TotalKas).To(gomega.Equal(int64(5000)))
			gomega.Expect(totals.TotalIncome).To(gomega.Equal(int64(20000)))
			gomega.Expect(totals.TotalExpense).To(gomega.Equal(int64(0)))
			gomega.Expect(totals.RemainingBalance).To(gomega.Equal(int64(25000)))
		})

		ginkgo.It("should widen correctly to an October-November window", func() {
			totals, err := aggregator.Recompute(ctx, date(2024, 10, 1), date(2024, 11, 30))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals.TotalKas).To(gomega.Equal(int64(10000)))
			gomega.Expect(totals.TotalIncome).To(gomega.Equal(int64(20000)))
			gomega.Expect(totals.TotalExpense).To(gomega.Equal(int64(7000)))
			gomega.Expect(totals.RemainingBalance).To(gomega.Equal(int64(23000)))
		})

		ginkgo.It("should include both interval endpoints", func() {
			totals, err := aggregator.Recompute(ctx, date(2024, 10, 10), date(2024, 10, 15))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals.TotalKas).To(gomega.Equal(int64(5000)))
			gomega.Expect(totals.TotalIncome).To(gomega.Equal(int64(20000)))
		})

		ginkgo.It("should return all zeros for an inverted interval without calling storage", func() {
			totals, err := aggregator.Recompute(ctx, date(2024, 11, 30), date(2024, 10, 1))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals).To(gomega.Equal(report.PeriodTotals{}))
			gomega.Expect(kasSummer.calls).To(gomega.BeZero())
		})

		ginkgo.It("should return all zeros for an empty window", func() {
			totals, err := aggregator.Recompute(ctx, date(2023, 1, 1), date(2023, 12, 31))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals).To(gomega.Equal(report.PeriodTotals{}))
		})

		ginkgo.It("should be idempotent when the ledger has not changed", func() {
			first, err := aggregator.Recompute(ctx, date(2024, 10, 1), date(2024, 12, 31))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := aggregator.Recompute(ctx, date(2024, 10, 1), date(2024, 12, 31))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(second).To(gomega.Equal(first))
		})

		ginkgo.It("should always balance kas plus income minus expense", func() {
			totals, err := aggregator.Recompute(ctx, date(2024, 1, 1), date(2024, 12, 31))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(totals.RemainingBalance).To(gomega.Equal(totals.TotalKas + totals.TotalIncome - totals.TotalExpense))
		})

		ginkgo.It("should propagate storage failures instead of returning zeros", func() {
			incomeSummer.sumError = errors.New("connection reset")

			_, err := aggregator.Recompute(ctx, date(2024, 10, 1), date(2024, 10, 31))
			gomega.Expect(err).To(gomega.MatchError("connection reset"))
		})
	})

	ginkgo.Describe("RecomputeIfComplete", func() {
		ginkgo.It("should skip aggregation when a bound is missing", func() {
			start := date(2024, 10, 1)

			_, computed, err := aggregator.RecomputeIfComplete(ctx, &start, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(computed).To(gomega.BeFalse())
			gomega.Expect(kasSummer.calls).To(gomega.BeZero())

			_, computed, err = aggregator.RecomputeIfComplete(ctx, nil, &start)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(computed).To(gomega.BeFalse())
		})

		ginkgo.It("should compute when both bounds are present", func() {
			start := date(2024, 10, 1)
			end := date(2024, 10, 31)

			totals, computed, err := aggregator.RecomputeIfComplete(ctx, &start, &end)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(computed).To(gomega.BeTrue())
			gomega.Expect(totals.RemainingBalance).To(gomega.Equal(int64(25000)))
		})
	})
})
