package content

import (
	"time"

	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
)

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsPublic  bool      `json:"is_public"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Page struct {
	ID           string    `json:"id"`
	FolderID     *string   `json:"folder_id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	BannerURL    *string   `json:"banner_url,omitempty"`
	ParentPageID *string   `json:"parent_page_id,omitempty"`
	IsPublic     bool      `json:"is_public"`
	AuthorID     string    `json:"author_id"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FolderFromDataModel(f *contentDatamodel.Folder) *Folder {
	return &Folder{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		IsPublic:  f.IsPublic,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func PageFromDataModel(p *contentDatamodel.Page) *Page {
	return &Page{
		ID:           p.ID,
		FolderID:     p.FolderID,
		Title:        p.Title,
		Content:      p.Content,
		BannerURL:    p.BannerURL,
		ParentPageID: p.ParentPageID,
		IsPublic:     p.IsPublic,
		AuthorID:     p.AuthorID,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
