package role

import (
	"strings"
	"time"

	userDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/user"
)

type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsSystem    bool      `json:"is_system"`
	Description *string   `json:"description"`
	UserCount   int64     `json:"user_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDataModel(r *userDatamodel.Role, userCount int64) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		IsSystem:    r.IsSystem,
		Description: r.Description,
		UserCount:   userCount,
		CreatedAt:   r.CreatedAt,
	}
}

// Slugify derives the role id from its display name: lowercased, spaces
// replaced with hyphens ("Media Team" -> "media-team").
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
