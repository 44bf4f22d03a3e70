package permission

import "github.com/prasetya/wiki-management/internal"

type GrantAccessDTO struct {
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"`
	ObjectType  ObjectType  `json:"object_type"`
	ObjectID    string      `json:"object_id"`
	Level       AccessLevel `json:"level"`
}

func (d GrantAccessDTO) Validate() error {
	if !d.SubjectType.Valid() {
		return internal.NewValidationError("subject_type must be USER or ROLE", internal.ErrCodeValidationFailed)
	}
	if d.SubjectID == "" {
		return internal.NewValidationError("subject_id is required", internal.ErrCodeValidationFailed)
	}
	if !d.ObjectType.Valid() {
		return internal.NewValidationError("object_type must be FOLDER or PAGE", internal.ErrCodeValidationFailed)
	}
	if d.ObjectID == "" {
		return internal.NewValidationError("object_id is required", internal.ErrCodeValidationFailed)
	}
	if !d.Level.Valid() {
		return internal.NewValidationError("level must be VIEW, EDIT or MANAGE", internal.ErrCodeValidationFailed)
	}
	return nil
}
