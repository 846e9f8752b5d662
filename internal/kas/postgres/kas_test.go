package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/mputra/treasury-management/internal/kas"
	kasPostgres "github.com/mputra/treasury-management/internal/kas/postgres"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestKasRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Kas Postgres Suite")
}

// SQLiteKas is a SQLite-compatible model for testing
type SQLiteKas struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null"`
	ActivityID *int64    `gorm:"column:activity_id"`
	Amount     int64     `gorm:"column:amount;not null"`
	Date       time.Time `gorm:"column:date"`
	Type       string    `gorm:"column:type"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SQLiteKas) TableName() string {
	return "kas"
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return t
}

var _ = ginkgo.Describe("Kas PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo kas.Repository
		ctx  context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		err = db.AutoMigrate(&SQLiteKas{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo = kasPostgres.NewKasRepository(db)
		ctx = context.Background()
	})

	ginkgo.Describe("Create and GetByID", func() {
		ginkgo.It("should persist and read back an entry", func() {
			entry := &kas.Kas{
				UserID: 7,
				Amount: 5000,
				Date:   date("2024-10-10"),
				Type:   kas.TypeInflow,
			}

			err := repo.Create(entry)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(entry.ID).To(gomega.BeNumerically(">", 0))

			got, err := repo.GetByID(entry.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(got.Amount).To(gomega.Equal(int64(5000)))
			gomega.Expect(got.UserID).To(gomega.Equal(int64(7)))
		})
	})

	ginkgo.Describe("SumAmountBetween", func() {
		ginkgo.BeforeEach(func() {
			for _, e := range []*kas.Kas{
				{UserID: 1, Amount: 5000, Date: date("2024-10-10"), Type: kas.TypeInflow},
				{UserID: 2, Amount: 5000, Date: date("2024-11-20"), Type: kas.TypeInflow},
			} {
				gomega.Expect(repo.Create(e)).To(gomega.Succeed())
			}
		})

		ginkgo.It("should sum only rows inside the interval", func() {
			total, err := repo.SumAmountBetween(ctx, date("2024-10-01"), date("2024-10-31"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(int64(5000)))
		})

		ginkgo.It("should include both interval endpoints", func() {
			total, err := repo.SumAmountBetween(ctx, date("2024-10-10"), date("2024-11-20"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(int64(10000)))
		})

		ginkgo.It("should return zero for an interval with no rows", func() {
			total, err := repo.SumAmountBetween(ctx, date("2025-01-01"), date("2025-01-31"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.BeZero())
		})

		ginkgo.It("should return zero when start is after end", func() {
			total, err := repo.SumAmountBetween(ctx, date("2024-11-30"), date("2024-10-01"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("GetByUserID", func() {
		ginkgo.It("should only return the member's entries", func() {
			gomega.Expect(repo.Create(&kas.Kas{UserID: 1, Amount: 5000, Date: date("2024-10-10")})).To(gomega.Succeed())
			gomega.Expect(repo.Create(&kas.Kas{UserID: 2, Amount: 5000, Date: date("2024-10-12")})).To(gomega.Succeed())

			entries, err := repo.GetByUserID(1, 20, 0)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(entries).To(gomega.HaveLen(1))
			gomega.Expect(entries[0].UserID).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove the entry", func() {
			entry := &kas.Kas{UserID: 1, Amount: 5000, Date: date("2024-10-10")}
			gomega.Expect(repo.Create(entry)).To(gomega.Succeed())

			gomega.Expect(repo.Delete(entry.ID)).To(gomega.Succeed())

			_, err := repo.GetByID(entry.ID)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
