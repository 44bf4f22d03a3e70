package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/user"
	"github.com/prasetya/wiki-management/internal/user"
)

// UserRepository implements user.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers() ([]*user.User, error) {
	var records []*userDatamodel.User
	if err := r.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(records))
	for _, record := range records {
		u, err := r.withRoles(record)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) GetUser(userID string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.withRoles(&record)
}

func (r *UserRepository) UpdateFullName(userID, fullName string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":  fullName,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) withRoles(record *userDatamodel.User) (*user.User, error) {
	var roleIDs []string
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", record.ID).
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}

	return &user.User{
		ID:        record.ID,
		Email:     record.Email,
		FullName:  record.FullName,
		LastLogin: record.LastLogin,
		Roles:     roleIDs,
		CreatedAt: record.CreatedAt,
	}, nil
}
