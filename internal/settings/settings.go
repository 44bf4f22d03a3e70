package settings

import (
	"time"

	settingDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/setting"
)

// KeyAllowZeroRoleUsers controls whether a user's last role may be
// removed. Stored as the string "true" or "false"; treated as true when
// the row is absent.
const KeyAllowZeroRoleUsers = "allow_zero_role_users"

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(s *settingDatamodel.Setting) *Setting {
	return &Setting{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}
