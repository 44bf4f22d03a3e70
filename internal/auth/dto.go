package auth

import (
	"strings"

	"github.com/prasetya/wiki-management/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return internal.NewValidationError("refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
