package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service handles authentication: credential checks and token lifecycle.
// Authorization decisions live in policy.go and take only the actor's role.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates npm + password and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, userID, err := s.repo.GetPasswordForNPM(dto.NPM)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	actor, err := s.repo.GetActorByID(userID)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if !actor.IsActive {
		return AuthTokens{}, ErrMemberInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, dto.NPM)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, dto.NPM)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens validates a refresh token and issues a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	actor, err := s.repo.GetActorByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !actor.IsActive {
		return AuthTokens{}, ErrMemberInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.NPM)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.NPM)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetActor loads the member behind a validated token, with the role already
// normalized by the repository.
func (s *Service) GetActor(userID int64) (*Actor, error) {
	actor, err := s.repo.GetActorByID(userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, ErrMemberInactive
	}
	return actor, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, npm string) (string, error) {
	return j.signToken(userID, npm, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, npm string) (string, error) {
	return j.signToken(userID, npm, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID int64, npm string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		NPM:    npm,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   npm,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns its claims. Tokens with a
// remaining lifetime beyond the access TTL are checked against the refresh
// secret.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		if claims, ok := token.Claims.(*Claims); ok && claims.ExpiresAt != nil {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
