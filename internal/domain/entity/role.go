package entity

// Role represents an account role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Accounts []Account `gorm:"foreignKey:RoleID" json:"accounts,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin    = 1
	RoleIDProvider = 2
	RoleIDClient   = 3
)

// RoleNames constants
const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleClient   = "client"
)

// RoleName returns the canonical name for a role ID.
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDProvider:
		return RoleProvider
	case RoleIDClient:
		return RoleClient
	default:
		return ""
	}
}
