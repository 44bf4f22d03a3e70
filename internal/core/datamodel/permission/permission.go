package permission

import "time"

// Permission is one ACL entry: a grant of an access level to a subject
// (user or role) over an object (folder or page). Duplicates are legal;
// the resolver takes the maximum matching level.
type Permission struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	SubjectType string    `gorm:"column:subject_type;not null"` // USER or ROLE
	SubjectID   string    `gorm:"column:subject_id;not null"`   // user uuid or role slug
	ObjectType  string    `gorm:"column:object_type;not null;index:idx_permissions_object"`
	ObjectID    string    `gorm:"column:object_id;type:uuid;not null;index:idx_permissions_object"`
	Level       string    `gorm:"column:level;not null"` // VIEW, EDIT or MANAGE
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Permission) TableName() string { return "permissions" }
