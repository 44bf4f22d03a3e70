package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prasetya/wiki-management/internal/content"
	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
)

// ContentRepository implements the content.RepositoryAPI interface using GORM.
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) content.RepositoryAPI {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) CreatePage(page *contentDatamodel.Page) error {
	return r.db.Create(page).Error
}

func (r *ContentRepository) GetPage(id string) (*contentDatamodel.Page, error) {
	var page contentDatamodel.Page
	err := r.db.Where("id = ?", id).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *ContentRepository) ListPages() ([]*contentDatamodel.Page, error) {
	var pages []*contentDatamodel.Page
	err := r.db.Where("deleted_at IS NULL").
		Order("sort_order ASC, created_at ASC").
		Find(&pages).Error
	return pages, err
}

func (r *ContentRepository) UpdatePage(page *contentDatamodel.Page) error {
	return r.db.Save(page).Error
}

func (r *ContentRepository) SoftDeletePage(id string, deletedAt time.Time) error {
	return r.db.Model(&contentDatamodel.Page{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": deletedAt,
			"updated_at": time.Now(),
		}).Error
}

func (r *ContentRepository) SearchPages(query string) ([]*contentDatamodel.Page, error) {
	var pages []*contentDatamodel.Page
	pattern := "%" + query + "%"
	err := r.db.Where("deleted_at IS NULL").
		Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Order("updated_at DESC").
		Find(&pages).Error
	return pages, err
}

func (r *ContentRepository) CreateFolder(folder *contentDatamodel.Folder) error {
	return r.db.Create(folder).Error
}

func (r *ContentRepository) GetFolder(id string) (*contentDatamodel.Folder, error) {
	var folder contentDatamodel.Folder
	err := r.db.Where("id = ?", id).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (r *ContentRepository) ListFolders() ([]*contentDatamodel.Folder, error) {
	var folders []*contentDatamodel.Folder
	err := r.db.Where("deleted_at IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&folders).Error
	return folders, err
}

func (r *ContentRepository) UpdateFolder(folder *contentDatamodel.Folder) error {
	return r.db.Save(folder).Error
}

// SoftDeleteFolderCascade marks the folder and every non-deleted page in
// it with the same timestamp. Runs inside one transaction so the cascade
// is never observably partial.
func (r *ContentRepository) SoftDeleteFolderCascade(id string, deletedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contentDatamodel.Folder{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at": deletedAt,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&contentDatamodel.Page{}).
			Where("folder_id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{
				"deleted_at": deletedAt,
				"updated_at": time.Now(),
			}).Error
	})
}
