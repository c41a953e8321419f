package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Title       string `gorm:"size:128;not null"`
	Description string
	Type        string `gorm:"size:10;not null"`
	AuthorID    uint   `gorm:"not null;index"`

	// Relationships
	Author       User          `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// OwningProjectID resolves the project governing read visibility. For a
// project that is the project itself.
func (p Project) OwningProjectID() uint { return p.ID }
