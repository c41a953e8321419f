package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUnderage is returned when a non-privileged account is saved without a
// valid RGPD age (present and >= 15).
var ErrUnderage = errors.New("user must be at least 15 years old (RGPD)")

const MinimumAge = 15

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`

	// RGPD consent fields
	Age             *int `gorm:"default:null"`
	CanBeContacted  bool `gorm:"not null;default:false"`
	CanDataBeShared bool `gorm:"not null;default:false"`

	IsSuperuser bool `gorm:"not null;default:false"`

	// Relationships
	AuthoredProjects []Project     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contributions    []Contributor `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AuthoredIssues   []Issue       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedIssues   []Issue       `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	AuthoredComments []Comment     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// BeforeSave enforces the RGPD minimum age on every create and update.
// Superuser accounts are exempt.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.IsSuperuser {
		return nil
	}

	if u.Age == nil || *u.Age < MinimumAge {
		return ErrUnderage
	}

	return nil
}
