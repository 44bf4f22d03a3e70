package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prasetya/wiki-management/internal/auth"
	userDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/user"
)

// AuthRepository implements auth.RepositoryAPI using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByEmail(email string) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.attachRoles(&record)
}

func (r *AuthRepository) GetUserWithRoles(userID string) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.attachRoles(&record)
}

func (r *AuthRepository) UpdateLastLogin(userID string, at time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func (r *AuthRepository) attachRoles(record *userDatamodel.User) (*auth.User, error) {
	var roleIDs []string
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", record.ID).
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}

	return &auth.User{
		ID:           record.ID,
		Email:        record.Email,
		FullName:     record.FullName,
		PasswordHash: record.PasswordHash,
		LastLogin:    record.LastLogin,
		Roles:        roleIDs,
	}, nil
}
