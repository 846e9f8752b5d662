package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock RepositoryAPI for testing
type mockAuthRepository struct {
	passwords     map[string]string // npm -> password hash
	userIDs       map[string]int64  // npm -> userID
	actors        map[int64]*Actor
	returnError   bool
	errorToReturn error
}

func newMockAuthRepository() *mockAuthRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	repo := &mockAuthRepository{
		passwords: map[string]string{
			"2110501001": string(hashedPassword),
			"2110501002": string(hashedPassword),
			"2110501003": string(hashedPassword),
		},
		userIDs: map[string]int64{
			"2110501001": 1,
			"2110501002": 2,
			"2110501003": 3,
		},
		actors: map[int64]*Actor{
			1: {ID: 1, NPM: "2110501001", Name: "Rina", Role: RoleUser, Position: "anggota", IsActive: true},
			2: {ID: 2, NPM: "2110501002", Name: "Budi", Role: RoleAdmin, Position: "sekretaris", IsActive: true},
			3: {ID: 3, NPM: "2110501003", Name: "Sari", Role: RoleKeuangan, Position: "bendahara", IsActive: false},
		},
	}
	return repo
}

func (m *mockAuthRepository) GetPasswordForNPM(npm string) (string, int64, error) {
	if m.returnError {
		return "", 0, m.errorToReturn
	}
	hash, ok := m.passwords[npm]
	if !ok {
		return "", 0, errors.New("member not found")
	}
	return hash, m.userIDs[npm], nil
}

func (m *mockAuthRepository) GetActorByID(userID int64) (*Actor, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	actor, ok := m.actors[userID]
	if !ok {
		return nil, errors.New("member not found")
	}
	return actor, nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockAuthRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-at-least-32-chars!!",
			"test-refresh-secret-at-least-32-chars!",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("with valid credentials", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				tokens, err := service.Authenticate(LoginDTO{NPM: "2110501001", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should issue an access token that validates back to the member", func() {
				tokens, err := service.Authenticate(LoginDTO{NPM: "2110501002", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(int64(2)))
				gomega.Expect(claims.NPM).To(gomega.Equal("2110501002"))
			})
		})

		ginkgo.Context("with invalid credentials", func() {
			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Authenticate(LoginDTO{NPM: "2110501001", Password: "wrong"})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown npm", func() {
				_, err := service.Authenticate(LoginDTO{NPM: "0000000000", Password: "correct_password"})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject missing fields with a validation error", func() {
				_, err := service.Authenticate(LoginDTO{})
				gomega.Expect(err).To(gomega.HaveOccurred())
				_, isValidation := err.(ValidationError)
				gomega.Expect(isValidation).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("with an inactive member", func() {
			ginkgo.It("should refuse to issue tokens", func() {
				_, err := service.Authenticate(LoginDTO{NPM: "2110501003", Password: "correct_password"})
				gomega.Expect(err).To(gomega.Equal(ErrMemberInactive))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should exchange a valid refresh token for a new pair", func() {
			tokens, err := service.Authenticate(LoginDTO{NPM: "2110501001", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			newTokens, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(newTokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(newTokens.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("GetActor", func() {
		ginkgo.It("should return the member with its normalized role", func() {
			actor, err := service.GetActor(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(actor.Role).To(gomega.Equal(RoleAdmin))
			gomega.Expect(actor.Can(ActionCreate, EntityKas)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject inactive members", func() {
			_, err := service.GetActor(3)
			gomega.Expect(err).To(gomega.Equal(ErrMemberInactive))
		})

		ginkgo.It("should propagate repository failures", func() {
			mockRepo.returnError = true
			mockRepo.errorToReturn = errors.New("connection refused")

			_, err := service.GetActor(1)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
