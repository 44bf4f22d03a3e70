package content

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prasetya/wiki-management/internal"
	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
	"github.com/prasetya/wiki-management/internal/permission"
)

// RepositoryAPI is the data access surface for folders and pages.
// Get lookups return (nil, nil) for missing rows; list and search
// exclude soft-deleted rows.
type RepositoryAPI interface {
	CreatePage(page *contentDatamodel.Page) error
	GetPage(id string) (*contentDatamodel.Page, error)
	ListPages() ([]*contentDatamodel.Page, error)
	UpdatePage(page *contentDatamodel.Page) error
	SoftDeletePage(id string, deletedAt time.Time) error
	SearchPages(query string) ([]*contentDatamodel.Page, error)

	CreateFolder(folder *contentDatamodel.Folder) error
	GetFolder(id string) (*contentDatamodel.Folder, error)
	ListFolders() ([]*contentDatamodel.Folder, error)
	UpdateFolder(folder *contentDatamodel.Folder) error
	// SoftDeleteFolderCascade marks the folder and every non-deleted page
	// in it with the same timestamp, atomically.
	SoftDeleteFolderCascade(id string, deletedAt time.Time) error
}

// PermissionChecker is the slice of the resolver the content service uses.
type PermissionChecker interface {
	CheckPermission(caller *permission.Caller, objectID string, objectType permission.ObjectType, required permission.AccessLevel) bool
}

// Service implements the page and folder operations. Every read is
// filtered through the resolver at VIEW; every mutation is gated at the
// level the operation requires.
type Service struct {
	repo     RepositoryAPI
	resolver PermissionChecker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, resolver PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// ---------------- Pages ----------------

func (s *Service) ListPages(caller *permission.Caller) ([]*Page, error) {
	records, err := s.repo.ListPages()
	if err != nil {
		s.logger.Error("failed to list pages", "error", err)
		return nil, err
	}

	accessible := make([]*Page, 0, len(records))
	for _, record := range records {
		if s.resolver.CheckPermission(caller, record.ID, permission.ObjectPage, permission.LevelView) {
			accessible = append(accessible, PageFromDataModel(record))
		}
	}
	return accessible, nil
}

func (s *Service) GetPage(caller *permission.Caller, pageID string) (*Page, error) {
	if !s.resolver.CheckPermission(caller, pageID, permission.ObjectPage, permission.LevelView) {
		return nil, internal.ErrPageNotFound
	}

	record, err := s.repo.GetPage(pageID)
	if err != nil {
		s.logger.Error("failed to get page", "error", err, "page_id", pageID)
		return nil, err
	}
	if record == nil || record.DeletedAt != nil {
		return nil, internal.ErrPageNotFound
	}
	return PageFromDataModel(record), nil
}

func (s *Service) CreatePage(caller *permission.Caller, dto CreatePageDTO) (*Page, error) {
	if caller == nil {
		return nil, internal.NewUnauthorizedError("Authentication required", internal.ErrCodeInvalidToken)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Creating inside a folder needs EDIT there; root-level creation only
	// needs authentication.
	if dto.FolderID != nil {
		if !s.resolver.CheckPermission(caller, *dto.FolderID, permission.ObjectFolder, permission.LevelEdit) {
			s.logger.Warn("page creation denied: no edit on folder", "folder_id", *dto.FolderID, "user_id", caller.ID)
			return nil, internal.ErrInsufficientLevel
		}
	}

	now := time.Now()
	record := &contentDatamodel.Page{
		ID:           uuid.NewString(),
		FolderID:     dto.FolderID,
		Title:        dto.Title,
		Content:      dto.Content,
		BannerURL:    dto.BannerURL,
		ParentPageID: dto.ParentPageID,
		IsPublic:     dto.IsPublic,
		AuthorID:     caller.ID,
		SortOrder:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreatePage(record); err != nil {
		s.logger.Error("failed to create page", "error", err, "user_id", caller.ID)
		return nil, err
	}

	s.logger.Info("page created", "page_id", record.ID, "author_id", caller.ID, "title", record.Title)
	return PageFromDataModel(record), nil
}

func (s *Service) UpdatePage(caller *permission.Caller, pageID string, dto UpdatePageDTO) (*Page, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetPage(pageID)
	if err != nil {
		s.logger.Error("failed to get page for update", "error", err, "page_id", pageID)
		return nil, err
	}
	if record == nil || record.DeletedAt != nil {
		return nil, internal.ErrPageNotFound
	}

	if !s.resolver.CheckPermission(caller, pageID, permission.ObjectPage, permission.LevelEdit) {
		return nil, internal.ErrInsufficientLevel
	}

	if dto.Title != nil {
		record.Title = *dto.Title
	}
	if dto.Content != nil {
		record.Content = *dto.Content
	}
	if dto.BannerURL != nil {
		record.BannerURL = dto.BannerURL
	}
	if dto.FolderID != nil {
		record.FolderID = dto.FolderID
	}
	if dto.IsPublic != nil {
		record.IsPublic = *dto.IsPublic
	}
	if dto.SortOrder != nil {
		record.SortOrder = *dto.SortOrder
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.UpdatePage(record); err != nil {
		s.logger.Error("failed to update page", "error", err, "page_id", pageID)
		return nil, err
	}

	s.logger.Info("page updated", "page_id", pageID)
	return PageFromDataModel(record), nil
}

func (s *Service) DeletePage(caller *permission.Caller, pageID string) error {
	record, err := s.repo.GetPage(pageID)
	if err != nil {
		s.logger.Error("failed to get page for delete", "error", err, "page_id", pageID)
		return err
	}
	if record == nil || record.DeletedAt != nil {
		return internal.ErrPageNotFound
	}

	if !s.resolver.CheckPermission(caller, pageID, permission.ObjectPage, permission.LevelManage) {
		return internal.ErrInsufficientLevel
	}

	if err := s.repo.SoftDeletePage(pageID, time.Now()); err != nil {
		s.logger.Error("failed to soft delete page", "error", err, "page_id", pageID)
		return err
	}

	s.logger.Info("page soft deleted", "page_id", pageID)
	return nil
}

// SearchPages matches title and content, then filters the hits through
// the same per-item VIEW check as listing; search never bypasses the
// resolver.
func (s *Service) SearchPages(caller *permission.Caller, query string) ([]*Page, error) {
	records, err := s.repo.SearchPages(query)
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", query)
		return nil, err
	}

	accessible := make([]*Page, 0, len(records))
	for _, record := range records {
		if s.resolver.CheckPermission(caller, record.ID, permission.ObjectPage, permission.LevelView) {
			accessible = append(accessible, PageFromDataModel(record))
		}
	}
	return accessible, nil
}

// ---------------- Folders ----------------

func (s *Service) ListFolders(caller *permission.Caller) ([]*Folder, error) {
	records, err := s.repo.ListFolders()
	if err != nil {
		s.logger.Error("failed to list folders", "error", err)
		return nil, err
	}

	accessible := make([]*Folder, 0, len(records))
	for _, record := range records {
		if s.resolver.CheckPermission(caller, record.ID, permission.ObjectFolder, permission.LevelView) {
			accessible = append(accessible, FolderFromDataModel(record))
		}
	}
	return accessible, nil
}

func (s *Service) GetFolder(caller *permission.Caller, folderID string) (*Folder, error) {
	if !s.resolver.CheckPermission(caller, folderID, permission.ObjectFolder, permission.LevelView) {
		return nil, internal.ErrFolderNotFound
	}

	record, err := s.repo.GetFolder(folderID)
	if err != nil {
		s.logger.Error("failed to get folder", "error", err, "folder_id", folderID)
		return nil, err
	}
	if record == nil || record.DeletedAt != nil {
		return nil, internal.ErrFolderNotFound
	}
	return FolderFromDataModel(record), nil
}

// CreateFolder is gated on the admin or superadmin role directly, not on
// ACL entries: folders are roots of the hierarchy there is nothing to
// inherit from yet.
func (s *Service) CreateFolder(caller *permission.Caller, dto CreateFolderDTO) (*Folder, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("folder creation denied: admin role required")
		return nil, internal.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ParentID != nil {
		parent, err := s.repo.GetFolder(*dto.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.DeletedAt != nil {
			return nil, internal.NewValidationError("parent folder does not exist", internal.ErrCodeValidationFailed)
		}
	}

	now := time.Now()
	record := &contentDatamodel.Folder{
		ID:        uuid.NewString(),
		Name:      dto.Name,
		ParentID:  dto.ParentID,
		IsPublic:  dto.IsPublic,
		SortOrder: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateFolder(record); err != nil {
		s.logger.Error("failed to create folder", "error", err)
		return nil, err
	}

	s.logger.Info("folder created", "folder_id", record.ID, "name", record.Name)
	return FolderFromDataModel(record), nil
}

func (s *Service) UpdateFolder(caller *permission.Caller, folderID string, dto UpdateFolderDTO) (*Folder, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetFolder(folderID)
	if err != nil {
		s.logger.Error("failed to get folder for update", "error", err, "folder_id", folderID)
		return nil, err
	}
	if record == nil || record.DeletedAt != nil {
		return nil, internal.ErrFolderNotFound
	}

	if !s.resolver.CheckPermission(caller, folderID, permission.ObjectFolder, permission.LevelManage) {
		return nil, internal.ErrInsufficientLevel
	}

	if dto.ParentID != nil {
		if err := s.validateNoCycle(folderID, *dto.ParentID); err != nil {
			return nil, err
		}
		record.ParentID = dto.ParentID
	}
	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.IsPublic != nil {
		record.IsPublic = *dto.IsPublic
	}
	if dto.SortOrder != nil {
		record.SortOrder = *dto.SortOrder
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.UpdateFolder(record); err != nil {
		s.logger.Error("failed to update folder", "error", err, "folder_id", folderID)
		return nil, err
	}

	s.logger.Info("folder updated", "folder_id", folderID)
	return FolderFromDataModel(record), nil
}

func (s *Service) DeleteFolder(caller *permission.Caller, folderID string) error {
	record, err := s.repo.GetFolder(folderID)
	if err != nil {
		s.logger.Error("failed to get folder for delete", "error", err, "folder_id", folderID)
		return err
	}
	if record == nil || record.DeletedAt != nil {
		return internal.ErrFolderNotFound
	}

	if !s.resolver.CheckPermission(caller, folderID, permission.ObjectFolder, permission.LevelManage) {
		return internal.ErrInsufficientLevel
	}

	if err := s.repo.SoftDeleteFolderCascade(folderID, time.Now()); err != nil {
		s.logger.Error("failed to cascade soft delete folder", "error", err, "folder_id", folderID)
		return err
	}

	s.logger.Info("folder soft deleted with pages", "folder_id", folderID)
	return nil
}

// validateNoCycle rejects a parent change that would make the folder its
// own ancestor. Walks from the proposed parent to the root.
func (s *Service) validateNoCycle(folderID, newParentID string) error {
	if newParentID == folderID {
		return internal.NewValidationError("folder cannot be its own parent", internal.ErrCodeFolderCycle)
	}

	seen := map[string]bool{folderID: true}
	currentID := newParentID
	for currentID != "" {
		if seen[currentID] {
			return internal.NewValidationError("folder parent change would create a cycle", internal.ErrCodeFolderCycle)
		}
		seen[currentID] = true

		ancestor, err := s.repo.GetFolder(currentID)
		if err != nil {
			return err
		}
		if ancestor == nil || ancestor.DeletedAt != nil {
			return internal.NewValidationError("parent folder does not exist", internal.ErrCodeValidationFailed)
		}
		if ancestor.ParentID == nil {
			break
		}
		currentID = *ancestor.ParentID
	}
	return nil
}
