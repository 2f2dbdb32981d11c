package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles understood by the capability matrix (see license package).
const (
	RoleAdmin        = "admin"
	RoleVendedor     = "vendedor"
	RoleContabilidad = "contabilidad"
	RoleTester       = "tester"
)

// User stores login credentials. Everything else about a person lives on the
// 1:1 Profile row so that auth and app data can evolve independently.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile drives role-based visibility. Role: admin | vendedor | contabilidad | tester.
// Theme and Locale are the user's persisted UI preferences.
type Profile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'vendedor'"`
	IsTestUser bool      `gorm:"not null;default:false"`
	FullName   string    `gorm:"not null"`
	AvatarURL  *string
	Theme      string `gorm:"type:varchar(10);not null;default:'light'"` // light | dark
	Locale     string `gorm:"type:varchar(10);not null;default:'es'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// DefaultProfile is the fail-open substitute applied when an authenticated
// user has no profile row (or the fetch fails). Granting tester here is a
// product decision: tester is read-only everywhere, so a missing profile can
// browse but never mutate.
func DefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:     userID,
		Role:       RoleTester,
		IsTestUser: false,
		FullName:   "",
	}
}
