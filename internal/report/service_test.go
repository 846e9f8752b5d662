package report_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/core/events"
	"github.com/mputra/treasury-management/internal/report"
)

type mockReportRepository struct {
	reports map[int64]*report.MonthlyReport
	nextID  int64
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{
		reports: make(map[int64]*report.MonthlyReport),
		nextID:  1,
	}
}

func (m *mockReportRepository) Create(rep *report.MonthlyReport) error {
	rep.ID = m.nextID
	m.nextID++
	m.reports[rep.ID] = rep
	return nil
}

func (m *mockReportRepository) GetByID(id int64) (*report.MonthlyReport, error) {
	rep, ok := m.reports[id]
	if !ok {
		return nil, errors.New("report not found")
	}
	return rep, nil
}

func (m *mockReportRepository) GetAll(limit, offset int) ([]*report.MonthlyReport, error) {
	var out []*report.MonthlyReport
	for _, rep := range m.reports {
		out = append(out, rep)
	}
	return out, nil
}

func (m *mockReportRepository) GetByPeriodContaining(ctx context.Context, date time.Time) ([]*report.MonthlyReport, error) {
	var out []*report.MonthlyReport
	for _, rep := range m.reports {
		if rep.CoversDate(date) {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (m *mockReportRepository) Update(rep *report.MonthlyReport) error {
	m.reports[rep.ID] = rep
	return nil
}

func (m *mockReportRepository) Delete(id int64) error {
	delete(m.reports, id)
	return nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = ginkgo.Describe("ReportService", func() {
	var (
		service       *report.Service
		mockRepo      *mockReportRepository
		kasSummer     *mockSummer
		incomeSummer  *mockSummer
		expenseSummer *mockSummer
		publisher     *mockPublisher
		ctx           context.Context
	)

	octStart := date(2024, 10, 1)
	octEnd := date(2024, 10, 31)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockReportRepository()
		kasSummer = &mockSummer{entries: []ledgerEntry{{date(2024, 10, 10), 5000}}}
		incomeSummer = &mockSummer{entries: []ledgerEntry{{date(2024, 10, 15), 20000}}}
		expenseSummer = &mockSummer{}
		publisher = &mockPublisher{}
		aggregator := report.NewAggregator(kasSummer, incomeSummer, expenseSummer)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(mockRepo, aggregator, publisher, lg)
		ctx = context.Background()
	})

	dto := report.CreateReportDTO{
		Title:       "Laporan Oktober 2024",
		ReportDate:  date(2024, 11, 1),
		PeriodStart: &octStart,
		PeriodEnd:   &octEnd,
	}

	ginkgo.Describe("CreateReport", func() {
		ginkgo.It("should materialize totals from the ledger", func() {
			rep, err := service.CreateReport(ctx, auth.RoleBendahara, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rep.TotalKas).To(gomega.Equal(int64(5000)))
			gomega.Expect(rep.TotalIncome).To(gomega.Equal(int64(20000)))
			gomega.Expect(rep.TotalExpense).To(gomega.Equal(int64(0)))
			gomega.Expect(rep.RemainingBalance).To(gomega.Equal(int64(25000)))
		})

		ginkgo.It("should publish a report.saved event", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(publisher.published).To(gomega.HaveLen(1))
			saved, ok := publisher.published[0].(*events.ReportSaved)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(saved.ReportID).To(gomega.Equal(rep.ID))
		})

		ginkgo.It("should leave totals at zero for an open-ended period", func() {
			open := dto
			open.PeriodEnd = nil

			rep, err := service.CreateReport(ctx, auth.RoleAdmin, open)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rep.RemainingBalance).To(gomega.BeZero())
			gomega.Expect(publisher.published).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse creation when aggregation fails", func() {
			kasSummer.sumError = errors.New("db down")

			_, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(mockRepo.reports).To(gomega.BeEmpty())
		})

		ginkgo.It("should deny keuangan, report creation needs admin or bendahara", func() {
			_, err := service.CreateReport(ctx, auth.RoleKeuangan, dto)
			gomega.Expect(err).To(gomega.Equal(internal.ErrActionForbidden))
		})
	})

	ginkgo.Describe("viewing reports", func() {
		ginkgo.It("should allow keuangan but deny regular members", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.GetReport(auth.RoleKeuangan, rep.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.GetReport(auth.RoleUser, rep.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrActionForbidden))
		})
	})

	ginkgo.Describe("UpdateReport", func() {
		ginkgo.It("should keep snapshot totals when only notes change", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// Ledger grows after the snapshot was taken.
			kasSummer.entries = append(kasSummer.entries, ledgerEntry{date(2024, 10, 20), 9999})

			notes := "reviewed"
			updated, err := service.UpdateReport(ctx, auth.RoleBendahara, rep.ID, report.UpdateReportDTO{Notes: &notes})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.TotalKas).To(gomega.Equal(int64(5000)))
			gomega.Expect(updated.Notes).To(gomega.Equal("reviewed"))
		})

		ginkgo.It("should recompute totals when a period bound moves", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			kasSummer.entries = append(kasSummer.entries, ledgerEntry{date(2024, 11, 20), 5000})
			expenseSummer.entries = append(expenseSummer.entries, ledgerEntry{date(2024, 11, 5), 7000})

			novEnd := date(2024, 11, 30)
			updated, err := service.UpdateReport(ctx, auth.RoleAdmin, rep.ID, report.UpdateReportDTO{PeriodEnd: &novEnd})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.TotalKas).To(gomega.Equal(int64(10000)))
			gomega.Expect(updated.TotalExpense).To(gomega.Equal(int64(7000)))
			gomega.Expect(updated.RemainingBalance).To(gomega.Equal(int64(23000)))
		})
	})

	ginkgo.Describe("StalenessWatcher", func() {
		ginkgo.It("should surface saved reports covering a new entry date", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			watcher := report.NewStalenessWatcher(mockRepo, lg)

			stale, err := watcher.StaleReports(ctx, date(2024, 10, 20))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stale).To(gomega.HaveLen(1))
			gomega.Expect(stale[0].ID).To(gomega.Equal(rep.ID))

			stale, err = watcher.StaleReports(ctx, date(2024, 12, 25))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stale).To(gomega.BeEmpty())
		})

		ginkgo.It("should not rewrite stored totals when handling ledger events", func() {
			rep, err := service.CreateReport(ctx, auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			watcher := report.NewStalenessWatcher(mockRepo, lg)

			event := events.NewLedgerEntryRecorded(events.EventTypeKasRecorded, 99, 9999, date(2024, 10, 20))
			gomega.Expect(watcher.HandleLedgerEvent(ctx, event)).To(gomega.Succeed())

			stored, err := mockRepo.GetByID(rep.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stored.TotalKas).To(gomega.Equal(int64(5000)))
		})
	})
})
