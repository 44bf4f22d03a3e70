package user

import (
	"strings"

	"github.com/prasetya/wiki-management/internal"
)

// UpdateUserDTO is a partial update; a non-nil RoleIDs replaces the
// user's entire role set.
type UpdateUserDTO struct {
	FullName *string   `json:"full_name"`
	RoleIDs  *[]string `json:"role_ids"`
}

func (d UpdateUserDTO) Validate() error {
	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		return internal.NewValidationError("full_name cannot be empty", internal.ErrCodeInvalidName)
	}
	return nil
}
