package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/setting"
	"github.com/prasetya/wiki-management/internal/settings"
)

// SettingsRepository implements settings.RepositoryAPI using GORM.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(key string) (*settingDatamodel.Setting, error) {
	var record settingDatamodel.Setting
	err := r.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *SettingsRepository) List() ([]*settingDatamodel.Setting, error) {
	var records []*settingDatamodel.Setting
	err := r.db.Order("key ASC").Find(&records).Error
	return records, err
}

func (r *SettingsRepository) Upsert(record *settingDatamodel.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(record).Error
}
