package activity_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/activity"
	"github.com/mputra/treasury-management/internal/auth"
)

func TestActivity(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Activity Module Suite")
}

type mockActivityRepository struct {
	activities map[int64]*activity.Activity
	nextID     int64
}

func newMockActivityRepository() *mockActivityRepository {
	return &mockActivityRepository{
		activities: make(map[int64]*activity.Activity),
		nextID:     1,
	}
}

func (m *mockActivityRepository) Create(act *activity.Activity) error {
	act.ID = m.nextID
	m.nextID++
	m.activities[act.ID] = act
	return nil
}

func (m *mockActivityRepository) GetByID(id int64) (*activity.Activity, error) {
	act, ok := m.activities[id]
	if !ok {
		return nil, errors.New("activity not found")
	}
	return act, nil
}

func (m *mockActivityRepository) GetByName(name string) (*activity.Activity, error) {
	for _, act := range m.activities {
		if act.Name == name {
			return act, nil
		}
	}
	return nil, errors.New("activity not found")
}

func (m *mockActivityRepository) GetAll(limit, offset int) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, act := range m.activities {
		out = append(out, act)
	}
	return out, nil
}

func (m *mockActivityRepository) Update(act *activity.Activity) error {
	m.activities[act.ID] = act
	return nil
}

func (m *mockActivityRepository) Delete(id int64) error {
	delete(m.activities, id)
	return nil
}

var _ = ginkgo.Describe("ActivityService", func() {
	var (
		service  *activity.Service
		mockRepo *mockActivityRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockActivityRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = activity.NewService(mockRepo, lg)
	})

	dto := activity.CreateActivityDTO{
		Name:     "Makrab 2024",
		Date:     time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		Location: "Villa Puncak",
	}

	ginkgo.Describe("CreateActivity", func() {
		ginkgo.It("should allow only admin", func() {
			_, err := service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CreateActivity(auth.RoleBendahara, dto)
			gomega.Expect(err).To(gomega.Equal(internal.ErrActionForbidden))
		})

		ginkgo.It("should reject a duplicate name", func() {
			_, err := service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDuplicateActivity))
		})

		ginkgo.It("should reject an empty name", func() {
			bad := dto
			bad.Name = "   "

			_, err := service.CreateActivity(auth.RoleAdmin, bad)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("GetActivity", func() {
		ginkgo.It("should be visible to every role, guests included", func() {
			created, err := service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			for _, role := range []auth.Role{auth.RoleUser, auth.RoleGuest, auth.RoleAnggota, auth.RoleKeuangan} {
				act, err := service.GetActivity(role, created.ID)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(act.Name).To(gomega.Equal("Makrab 2024"))
			}
		})
	})

	ginkgo.Describe("UpdateActivity", func() {
		ginkgo.It("should apply partial updates for admin", func() {
			created, err := service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			loc := "Aula Kampus"
			updated, err := service.UpdateActivity(auth.RoleAdmin, created.ID, activity.UpdateActivityDTO{Location: &loc})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Location).To(gomega.Equal("Aula Kampus"))
			gomega.Expect(updated.Name).To(gomega.Equal("Makrab 2024"))
		})

		ginkgo.It("should deny bendahara", func() {
			created, err := service.CreateActivity(auth.RoleAdmin, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			loc := "Aula Kampus"
			_, err = service.UpdateActivity(auth.RoleBendahara, created.ID, activity.UpdateActivityDTO{Location: &loc})
			gomega.Expect(err).To(gomega.Equal(internal.ErrActionForbidden))
		})
	})

	ginkgo.Describe("DeleteActivity", func() {
		ginkgo.It("should return not found for a missing activity", func() {
			err := service.DeleteActivity(auth.RoleAdmin, 42)
			gomega.Expect(err).To(gomega.Equal(internal.ErrActivityNotFound))
		})
	})
})
