package role

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prasetya/wiki-management/internal"
	userDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/user"
	"github.com/prasetya/wiki-management/internal/permission"
)

type RepositoryAPI interface {
	// GetRole returns (nil, nil) for unknown role ids.
	GetRole(id string) (*userDatamodel.Role, error)
	ListRoles() ([]*userDatamodel.Role, error)
	CreateRole(role *userDatamodel.Role) error
	UpdateRole(role *userDatamodel.Role) error
	DeleteRole(id string) error
	CountAssignments(roleID string) (int64, error)

	GetUser(userID string) (*userDatamodel.User, error)
	ListUserRoleIDs(userID string) ([]string, error)
	CountUserRoles(userID string) (int64, error)
	// ReplaceUserRoles deletes the user's existing links and inserts the
	// new set in one transaction.
	ReplaceUserRoles(userID string, roleIDs []string) error
	GetUserRole(userID, roleID string) (*userDatamodel.UserRole, error)
	DeleteUserRole(userID, roleID string) error
}

// SettingsAPI exposes the single setting role administration consults.
type SettingsAPI interface {
	AllowZeroRoleUsers() (bool, error)
}

// Service manages custom roles and user-role assignments. Every
// operation requires the caller to hold the admin or superadmin role.
type Service struct {
	repo     RepositoryAPI
	settings SettingsAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, settings SettingsAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		logger:   logger,
	}
}

func (s *Service) ListRoles(caller *permission.Caller) ([]*Role, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrAdminRequired
	}

	records, err := s.repo.ListRoles()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, err
	}

	roles := make([]*Role, 0, len(records))
	for _, record := range records {
		count, err := s.repo.CountAssignments(record.ID)
		if err != nil {
			s.logger.Error("failed to count role assignments", "error", err, "role_id", record.ID)
			return nil, err
		}
		roles = append(roles, FromDataModel(record, count))
	}
	return roles, nil
}

func (s *Service) CreateRole(caller *permission.Caller, dto CreateRoleDTO) (*Role, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	slug := Slugify(dto.Name)
	existing, err := s.repo.GetRole(slug)
	if err != nil {
		s.logger.Error("failed to check role existence", "error", err, "role_id", slug)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("Role with this name already exists", internal.ErrCodeRoleExists)
	}

	record := &userDatamodel.Role{
		ID:          slug,
		Name:        dto.Name,
		IsSystem:    false,
		Description: dto.Description,
		CreatedBy:   &caller.ID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateRole(record); err != nil {
		s.logger.Error("failed to create role", "error", err, "role_id", slug)
		return nil, err
	}

	s.logger.Info("role created", "role_id", slug, "created_by", caller.ID)
	return FromDataModel(record, 0), nil
}

func (s *Service) UpdateRole(caller *permission.Caller, roleID string, dto UpdateRoleDTO) (*Role, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetRole(roleID)
	if err != nil {
		s.logger.Error("failed to get role", "error", err, "role_id", roleID)
		return nil, err
	}
	if record == nil {
		return nil, internal.ErrRoleNotFound
	}
	if record.IsSystem {
		return nil, internal.ErrSystemRoleProtected
	}

	// Only name and description mutate; the slug stays stable.
	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.Description != nil {
		record.Description = dto.Description
	}
	if err := s.repo.UpdateRole(record); err != nil {
		s.logger.Error("failed to update role", "error", err, "role_id", roleID)
		return nil, err
	}

	count, err := s.repo.CountAssignments(roleID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("role updated", "role_id", roleID)
	return FromDataModel(record, count), nil
}

func (s *Service) DeleteRole(caller *permission.Caller, roleID string) error {
	if !caller.IsAdmin() {
		return internal.ErrAdminRequired
	}

	record, err := s.repo.GetRole(roleID)
	if err != nil {
		s.logger.Error("failed to get role", "error", err, "role_id", roleID)
		return err
	}
	if record == nil {
		return internal.ErrRoleNotFound
	}
	if record.IsSystem {
		return internal.NewSystemProtectedError("Cannot delete system roles")
	}

	count, err := s.repo.CountAssignments(roleID)
	if err != nil {
		s.logger.Error("failed to count role assignments", "error", err, "role_id", roleID)
		return err
	}
	if count > 0 {
		return internal.NewConflictError(
			fmt.Sprintf("Cannot delete role with %d assigned users. Please reassign users first.", count),
			internal.ErrCodeRoleInUse,
		)
	}

	if err := s.repo.DeleteRole(roleID); err != nil {
		s.logger.Error("failed to delete role", "error", err, "role_id", roleID)
		return err
	}

	s.logger.Info("role deleted", "role_id", roleID)
	return nil
}

func (s *Service) GetUserRoles(caller *permission.Caller, userID string) ([]string, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrAdminRequired
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, internal.ErrUserNotFound
	}

	return s.repo.ListUserRoleIDs(userID)
}

// AssignUserRoles replaces the user's entire role set. Every role id is
// validated before any change is applied.
func (s *Service) AssignUserRoles(caller *permission.Caller, userID string, dto AssignRolesDTO) error {
	if !caller.IsAdmin() {
		return internal.ErrAdminRequired
	}

	user, err := s.repo.GetUser(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return err
	}
	if user == nil {
		return internal.ErrUserNotFound
	}

	for _, roleID := range dto.RoleIDs {
		record, err := s.repo.GetRole(roleID)
		if err != nil {
			s.logger.Error("failed to validate role", "error", err, "role_id", roleID)
			return err
		}
		if record == nil {
			return internal.NewValidationError(
				fmt.Sprintf("Role '%s' not found", roleID),
				internal.ErrCodeInvalidRoleList,
			)
		}
	}

	if err := s.repo.ReplaceUserRoles(userID, dto.RoleIDs); err != nil {
		s.logger.Error("failed to replace user roles", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user roles replaced", "user_id", userID, "role_count", len(dto.RoleIDs))
	return nil
}

// RemoveUserRole removes one role from a user. Removing the last role is
// allowed only when the allow_zero_role_users setting permits it.
func (s *Service) RemoveUserRole(caller *permission.Caller, userID, roleID string) error {
	if !caller.IsAdmin() {
		return internal.ErrAdminRequired
	}

	link, err := s.repo.GetUserRole(userID, roleID)
	if err != nil {
		s.logger.Error("failed to get user role", "error", err, "user_id", userID, "role_id", roleID)
		return err
	}
	if link == nil {
		return internal.NewNotFoundError("User role assignment not found", internal.ErrCodeAssignmentNotFound)
	}

	count, err := s.repo.CountUserRoles(userID)
	if err != nil {
		s.logger.Error("failed to count user roles", "error", err, "user_id", userID)
		return err
	}
	if count <= 1 {
		allowZero, err := s.settings.AllowZeroRoleUsers()
		if err != nil {
			s.logger.Error("failed to read allow_zero_role_users", "error", err)
			return err
		}
		if !allowZero {
			return internal.NewConflictError(
				"Cannot remove last role. User must have at least one role.",
				internal.ErrCodeLastRole,
			)
		}
	}

	if err := s.repo.DeleteUserRole(userID, roleID); err != nil {
		s.logger.Error("failed to delete user role", "error", err, "user_id", userID, "role_id", roleID)
		return err
	}

	s.logger.Info("user role removed", "user_id", userID, "role_id", roleID)
	return nil
}
