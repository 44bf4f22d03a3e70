package content

import "time"

type Folder struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	Name      string     `gorm:"column:name;not null"`
	ParentID  *string    `gorm:"column:parent_id;type:uuid;index"`
	IsPublic  bool       `gorm:"column:is_public;default:false"`
	SortOrder int        `gorm:"column:sort_order;default:0"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

type Page struct {
	ID           string     `gorm:"primaryKey;type:uuid"`
	FolderID     *string    `gorm:"column:folder_id;type:uuid;index"`
	Title        string     `gorm:"column:title;not null"`
	Content      string     `gorm:"column:content;type:text"`
	BannerURL    *string    `gorm:"column:banner_url"`
	ParentPageID *string    `gorm:"column:parent_page_id;type:uuid;index"`
	IsPublic     bool       `gorm:"column:is_public;default:false"`
	AuthorID     string     `gorm:"column:author_id;type:uuid;not null"`
	SortOrder    int        `gorm:"column:sort_order;default:0"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Folder) TableName() string { return "folders" }
func (Page) TableName() string   { return "pages" }
