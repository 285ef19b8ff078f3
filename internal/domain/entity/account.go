package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents the centralized authentication table
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role           Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	ProviderDetail *ProviderDetail `gorm:"foreignKey:UserID" json:"provider_detail,omitempty"`
	ClientDetail   *ClientDetail   `gorm:"foreignKey:UserID" json:"client_detail,omitempty"`

	// Favorites is a directed self-referential relation: an account can
	// favorite providers without the reverse edge existing.
	Favorites []Account `gorm:"many2many:account_favorites;joinForeignKey:AccountID;joinReferences:FavoriteID" json:"favorites,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns the UUID client-side so the entity works against
// both PostgreSQL and the SQLite test database.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsProvider reports whether the account holds the provider role.
func (a *Account) IsProvider() bool {
	return a.RoleID == RoleIDProvider
}

// IsClient reports whether the account holds the client role.
func (a *Account) IsClient() bool {
	return a.RoleID == RoleIDClient
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a.RoleID == RoleIDAdmin
}
