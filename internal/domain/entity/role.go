package entity

// RoleName is the closed set of actor roles in the system
type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleDoctor  RoleName = "doctor"
	RolePatient RoleName = "patient"
)

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// NameForRoleID maps a role id to its RoleName
func NameForRoleID(id int) (RoleName, bool) {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin, true
	case RoleIDDoctor:
		return RoleDoctor, true
	case RoleIDPatient:
		return RolePatient, true
	default:
		return "", false
	}
}
