package postgres

import (
	"errors"

	"gorm.io/gorm"

	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
	permissionDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/permission"
	"github.com/prasetya/wiki-management/internal/permission"
)

// PermissionRepository implements permission.RepositoryAPI using GORM.
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetFolderInfo(id string) (*permission.ObjectInfo, error) {
	var folder contentDatamodel.Folder
	err := r.db.Where("id = ?", id).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission.ObjectInfo{
		IsPublic: folder.IsPublic,
		ParentID: folder.ParentID,
	}, nil
}

func (r *PermissionRepository) GetPageInfo(id string) (*permission.ObjectInfo, error) {
	var page contentDatamodel.Page
	err := r.db.Where("id = ?", id).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission.ObjectInfo{
		IsPublic: page.IsPublic,
		FolderID: page.FolderID,
	}, nil
}

func (r *PermissionRepository) GrantsForObject(objectType permission.ObjectType, objectID string, userID string, roleIDs []string) ([]permission.Grant, error) {
	var records []permissionDatamodel.Permission

	query := r.db.Where("object_type = ? AND object_id = ?", string(objectType), objectID)
	if len(roleIDs) > 0 {
		query = query.Where(
			"(subject_type = ? AND subject_id = ?) OR (subject_type = ? AND subject_id IN ?)",
			string(permission.SubjectUser), userID,
			string(permission.SubjectRole), roleIDs,
		)
	} else {
		query = query.Where("subject_type = ? AND subject_id = ?", string(permission.SubjectUser), userID)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toGrants(records), nil
}

func (r *PermissionRepository) CreateGrant(grant *permissionDatamodel.Permission) error {
	return r.db.Create(grant).Error
}

func (r *PermissionRepository) GetGrant(id string) (*permissionDatamodel.Permission, error) {
	var record permissionDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *PermissionRepository) DeleteGrant(id string) error {
	return r.db.Where("id = ?", id).Delete(&permissionDatamodel.Permission{}).Error
}

func (r *PermissionRepository) ListObjectGrants(objectType permission.ObjectType, objectID string) ([]permission.Grant, error) {
	var records []permissionDatamodel.Permission
	err := r.db.Where("object_type = ? AND object_id = ?", string(objectType), objectID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toGrants(records), nil
}

func toGrants(records []permissionDatamodel.Permission) []permission.Grant {
	grants := make([]permission.Grant, 0, len(records))
	for _, record := range records {
		grants = append(grants, permission.Grant{
			ID:          record.ID,
			SubjectType: permission.SubjectType(record.SubjectType),
			SubjectID:   record.SubjectID,
			ObjectType:  permission.ObjectType(record.ObjectType),
			ObjectID:    record.ObjectID,
			Level:       permission.AccessLevel(record.Level),
		})
	}
	return grants
}
