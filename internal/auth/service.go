package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prasetya/wiki-management/internal"
)

// Service handles authentication: credential checks and token lifecycle.
type Service struct {
	userRepo       RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	logger         *slog.Logger
}

func NewService(userRepo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens. Accounts with a
// nil password hash cannot authenticate with a password at all.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("user lookup failed", "error", err)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if user == nil || user.PasswordHash == nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(*user.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		// login still succeeds; the timestamp is best effort
		s.logger.Warn("failed to update last login", "error", err, "user_id", user.ID)
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("user authenticated", "user_id", user.ID)
	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens validates a refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.Email)
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

// GetUserWithRoles loads the user and its role slugs for the auth
// middleware; the result becomes the caller for every permission check.
func (s *Service) GetUserWithRoles(userID string) (*User, error) {
	user, err := s.userRepo.GetUserWithRoles(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, internal.ErrUserNotFound
	}
	return user, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID string, email string) (string, error) {
	return j.signToken(userID, email, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID string, email string) (string, error) {
	return j.signToken(userID, email, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) signToken(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken checks signature and expiry against the access secret.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	return j.parseToken(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.parseToken(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) parseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}
	if !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
