package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is addressed externally by its generated UUID rather than the
// sequential primary key, so the identifier leaks neither creation order
// nor volume.
type Comment struct {
	gorm.Model

	UUID        string `gorm:"size:36;uniqueIndex;not null"`
	Description string `gorm:"not null"`

	IssueID  uint `gorm:"not null;index"`
	AuthorID uint `gorm:"not null;index"`

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

// OwningProjectID resolves the project governing read visibility. Callers
// must have preloaded the Issue association.
func (c Comment) OwningProjectID() uint { return c.Issue.ProjectID }
