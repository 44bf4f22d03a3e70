package role

import (
	"strings"

	"github.com/prasetya/wiki-management/internal"
)

type CreateRoleDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (d CreateRoleDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	return nil
}

type UpdateRoleDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (d UpdateRoleDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeInvalidName)
	}
	return nil
}

// AssignRolesDTO replaces the user's entire role set.
type AssignRolesDTO struct {
	RoleIDs []string `json:"role_ids"`
}
