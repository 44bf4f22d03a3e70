package user

import "time"

type User struct {
	ID           string     `gorm:"primaryKey;type:uuid"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	FullName     string     `gorm:"column:full_name"`
	PasswordHash *string    `gorm:"column:password_hash"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`

	UserRoles []UserRole `gorm:"foreignKey:UserID"`
}

type Role struct {
	ID          string    `gorm:"primaryKey"` // slug, e.g. "superadmin", "media-team"
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	IsSystem    bool      `gorm:"column:is_system;default:false"`
	Description *string   `gorm:"column:description"`
	CreatedBy   *string   `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// UserRole links one user to one role; the (user_id, role_id) pair is unique.
type UserRole struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	RoleID    string    `gorm:"column:role_id;not null;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (User) TableName() string     { return "users" }
func (Role) TableName() string     { return "roles" }
func (UserRole) TableName() string { return "user_roles" }
