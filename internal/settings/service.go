package settings

import (
	"log/slog"
	"strings"
	"time"

	"github.com/prasetya/wiki-management/internal"
	settingDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/setting"
	"github.com/prasetya/wiki-management/internal/permission"
)

type RepositoryAPI interface {
	// Get returns (nil, nil) for unknown keys.
	Get(key string) (*settingDatamodel.Setting, error)
	List() ([]*settingDatamodel.Setting, error)
	Upsert(setting *settingDatamodel.Setting) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListSettings() ([]*Setting, error) {
	records, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list settings", "error", err)
		return nil, err
	}

	out := make([]*Setting, 0, len(records))
	for _, record := range records {
		out = append(out, FromDataModel(record))
	}
	return out, nil
}

// UpdateSetting upserts a key. Only superadmin may change settings.
func (s *Service) UpdateSetting(caller *permission.Caller, key, value string) (*Setting, error) {
	if !caller.IsSuperAdmin() {
		return nil, internal.ErrAdminRequired
	}
	if strings.TrimSpace(key) == "" {
		return nil, internal.NewValidationError("setting key is required", internal.ErrCodeValidationFailed)
	}

	record := &settingDatamodel.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Upsert(record); err != nil {
		s.logger.Error("failed to upsert setting", "error", err, "key", key)
		return nil, err
	}

	s.logger.Info("setting updated", "key", key, "value", value)
	return FromDataModel(record), nil
}

// AllowZeroRoleUsers reads the last-role setting, defaulting to true
// when the row is absent.
func (s *Service) AllowZeroRoleUsers() (bool, error) {
	record, err := s.repo.Get(KeyAllowZeroRoleUsers)
	if err != nil {
		return false, err
	}
	if record == nil {
		return true, nil
	}
	return record.Value == "true", nil
}
