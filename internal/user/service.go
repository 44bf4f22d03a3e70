package user

import (
	"log/slog"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/permission"
	"github.com/prasetya/wiki-management/internal/role"
)

type RepositoryAPI interface {
	ListUsers() ([]*User, error)
	// GetUser returns (nil, nil) for unknown ids.
	GetUser(userID string) (*User, error)
	UpdateFullName(userID, fullName string) error
}

// RoleAssigner is the slice of role administration the user service
// delegates role replacement to, so the all-or-nothing validation lives
// in one place.
type RoleAssigner interface {
	AssignUserRoles(caller *permission.Caller, userID string, dto role.AssignRolesDTO) error
}

// Service implements superadmin-gated user administration.
type Service struct {
	repo   RepositoryAPI
	roles  RoleAssigner
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, roles RoleAssigner, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		logger: logger,
	}
}

func (s *Service) ListUsers(caller *permission.Caller) ([]*User, error) {
	if !caller.IsSuperAdmin() {
		return nil, internal.ErrAdminRequired
	}

	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateUser(caller *permission.Caller, userID string, dto UpdateUserDTO) (*User, error) {
	if !caller.IsSuperAdmin() {
		return nil, internal.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUser(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.FullName != nil {
		if err := s.repo.UpdateFullName(userID, *dto.FullName); err != nil {
			s.logger.Error("failed to update user name", "error", err, "user_id", userID)
			return nil, err
		}
	}

	if dto.RoleIDs != nil {
		if err := s.roles.AssignUserRoles(caller, userID, role.AssignRolesDTO{RoleIDs: *dto.RoleIDs}); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return updated, nil
}
