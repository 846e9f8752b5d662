package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetActor(userID int64) (*Actor, error)
}

type RepositoryAPI interface {
	GetPasswordForNPM(npm string) (passwordHash string, userID int64, err error)
	GetActorByID(userID int64) (*Actor, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, npm string) (token string, err error)
	GenerateRefreshToken(userID int64, npm string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Actor is the authenticated member as seen by handlers and the policy
// middleware. Role is already normalized.
type Actor struct {
	ID       int64  `json:"id"`
	NPM      string `json:"npm"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Position string `json:"position"`
	IsActive bool   `json:"is_active"`
}

func (a *Actor) Can(action Action, entity Entity) bool {
	return Authorize(a.Role, action, entity)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	NPM    string `json:"npm"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrMemberInactive     = errors.New("member is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
