package content

import (
	"strings"

	"github.com/prasetya/wiki-management/internal"
)

type CreatePageDTO struct {
	FolderID     *string `json:"folder_id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	BannerURL    *string `json:"banner_url"`
	ParentPageID *string `json:"parent_page_id"`
	IsPublic     bool    `json:"is_public"`
}

func (d CreatePageDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeInvalidTitle)
	}
	return nil
}

// UpdatePageDTO is a partial update: only non-nil fields change.
type UpdatePageDTO struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	BannerURL *string `json:"banner_url"`
	FolderID  *string `json:"folder_id"`
	IsPublic  *bool   `json:"is_public"`
	SortOrder *int    `json:"sort_order"`
}

func (d UpdatePageDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeInvalidTitle)
	}
	return nil
}

type CreateFolderDTO struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
	IsPublic bool    `json:"is_public"`
}

func (d CreateFolderDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	return nil
}

type UpdateFolderDTO struct {
	Name      *string `json:"name"`
	ParentID  *string `json:"parent_id"`
	IsPublic  *bool   `json:"is_public"`
	SortOrder *int    `json:"sort_order"`
}

func (d UpdateFolderDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeInvalidName)
	}
	return nil
}
