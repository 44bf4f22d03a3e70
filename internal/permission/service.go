package permission

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prasetya/wiki-management/internal"
	permissionDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/permission"
)

type RepositoryAPI interface {
	Store
	CreateGrant(grant *permissionDatamodel.Permission) error
	GetGrant(id string) (*permissionDatamodel.Permission, error)
	DeleteGrant(id string) error
	ListObjectGrants(objectType ObjectType, objectID string) ([]Grant, error)
}

// Service manages ACL entries on folders and pages. Every mutation is
// gated on MANAGE access to the target object.
type Service struct {
	repo     RepositoryAPI
	resolver *Resolver
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, resolver *Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

func (s *Service) Resolver() *Resolver {
	return s.resolver
}

func (s *Service) ListObjectGrants(caller *Caller, objectType ObjectType, objectID string) ([]Grant, error) {
	if !objectType.Valid() {
		return nil, internal.NewValidationError("object_type must be FOLDER or PAGE", internal.ErrCodeValidationFailed)
	}
	if !s.resolver.CheckPermission(caller, objectID, objectType, LevelManage) {
		return nil, internal.ErrInsufficientLevel
	}

	grants, err := s.repo.ListObjectGrants(objectType, objectID)
	if err != nil {
		s.logger.Error("failed to list grants", "error", err, "object_type", objectType, "object_id", objectID)
		return nil, err
	}
	return grants, nil
}

func (s *Service) GrantAccess(caller *Caller, dto GrantAccessDTO) (*Grant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.resolver.CheckPermission(caller, dto.ObjectID, dto.ObjectType, LevelManage) {
		s.logger.Warn("grant denied: caller lacks manage on object",
			"object_type", dto.ObjectType, "object_id", dto.ObjectID)
		return nil, internal.ErrInsufficientLevel
	}

	record := &permissionDatamodel.Permission{
		ID:          uuid.NewString(),
		SubjectType: string(dto.SubjectType),
		SubjectID:   dto.SubjectID,
		ObjectType:  string(dto.ObjectType),
		ObjectID:    dto.ObjectID,
		Level:       string(dto.Level),
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateGrant(record); err != nil {
		s.logger.Error("failed to create grant", "error", err, "object_id", dto.ObjectID)
		return nil, err
	}

	s.logger.Info("access granted",
		"subject_type", dto.SubjectType,
		"subject_id", dto.SubjectID,
		"object_type", dto.ObjectType,
		"object_id", dto.ObjectID,
		"level", dto.Level)

	return &Grant{
		ID:          record.ID,
		SubjectType: dto.SubjectType,
		SubjectID:   dto.SubjectID,
		ObjectType:  dto.ObjectType,
		ObjectID:    dto.ObjectID,
		Level:       dto.Level,
	}, nil
}

func (s *Service) RevokeAccess(caller *Caller, grantID string) error {
	record, err := s.repo.GetGrant(grantID)
	if err != nil {
		s.logger.Error("failed to load grant", "error", err, "grant_id", grantID)
		return err
	}
	if record == nil {
		return internal.NewNotFoundError("Permission entry not found", internal.ErrCodeAssignmentNotFound)
	}
	if !s.resolver.CheckPermission(caller, record.ObjectID, ObjectType(record.ObjectType), LevelManage) {
		return internal.ErrInsufficientLevel
	}

	if err := s.repo.DeleteGrant(grantID); err != nil {
		s.logger.Error("failed to delete grant", "error", err, "grant_id", grantID)
		return err
	}

	s.logger.Info("access revoked", "grant_id", grantID, "object_id", record.ObjectID)
	return nil
}
