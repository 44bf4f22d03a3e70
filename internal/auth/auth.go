package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/prasetya/wiki-management/internal/permission"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithRoles(userID string) (*User, error)
}

type RepositoryAPI interface {
	// GetByEmail returns (nil, nil) for unknown emails.
	GetByEmail(email string) (*User, error)
	// GetUserWithRoles returns the user with role slugs loaded, (nil, nil)
	// when missing.
	GetUserWithRoles(userID string) (*User, error)
	UpdateLastLogin(userID string, at time.Time) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// User is the authenticated caller as the service layer sees it: identity
// plus the flat set of role slugs. PasswordHash is nil for accounts that
// cannot authenticate with a password.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PasswordHash *string    `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Roles        []string   `json:"roles"`
}

// Caller converts the user into the resolver's caller shape.
func (u *User) Caller() *permission.Caller {
	if u == nil {
		return nil
	}
	return &permission.Caller{ID: u.ID, Roles: u.Roles}
}

func (u *User) HasRole(slug string) bool {
	for _, r := range u.Roles {
		if r == slug {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(permission.RoleAdmin) || u.HasRole(permission.RoleSuperAdmin)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

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
