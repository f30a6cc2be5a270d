package usecase

import (
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
)

// Principal identifies the authenticated caller of a usecase. It is built by
// the auth middleware from the verified token claims.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   entity.RoleName
}

func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

func (p Principal) IsDoctor() bool {
	return p.Role == entity.RoleDoctor
}

func (p Principal) IsPatient() bool {
	return p.Role == entity.RolePatient
}
