package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/user"
	"github.com/prasetya/wiki-management/internal/role"
)

// RoleRepository implements role.RepositoryAPI using GORM.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetRole(id string) (*userDatamodel.Role, error) {
	var record userDatamodel.Role
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *RoleRepository) ListRoles() ([]*userDatamodel.Role, error) {
	var records []*userDatamodel.Role
	err := r.db.Order("is_system DESC, created_at ASC").Find(&records).Error
	return records, err
}

func (r *RoleRepository) CreateRole(record *userDatamodel.Role) error {
	return r.db.Create(record).Error
}

func (r *RoleRepository) UpdateRole(record *userDatamodel.Role) error {
	return r.db.Save(record).Error
}

func (r *RoleRepository) DeleteRole(id string) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.Role{}).Error
}

func (r *RoleRepository) CountAssignments(roleID string) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

func (r *RoleRepository) GetUser(userID string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *RoleRepository) ListUserRoleIDs(userID string) ([]string, error) {
	var roleIDs []string
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &roleIDs).Error
	return roleIDs, err
}

func (r *RoleRepository) CountUserRoles(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ReplaceUserRoles swaps the user's role set atomically: the delete and
// the inserts either all commit or none do.
func (r *RoleRepository) ReplaceUserRoles(userID string, roleIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&userDatamodel.UserRole{}).Error; err != nil {
			return err
		}

		for _, roleID := range roleIDs {
			link := &userDatamodel.UserRole{
				UserID:    userID,
				RoleID:    roleID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RoleRepository) GetUserRole(userID, roleID string) (*userDatamodel.UserRole, error) {
	var record userDatamodel.UserRole
	err := r.db.Where("user_id = ? AND role_id = ?", userID, roleID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *RoleRepository) DeleteUserRole(userID, roleID string) error {
	return r.db.Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&userDatamodel.UserRole{}).Error
}
