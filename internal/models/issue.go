package models

import "gorm.io/gorm"

type Issue struct {
	gorm.Model

	Title       string `gorm:"size:128;not null"`
	Description string
	Priority    string `gorm:"size:6;not null;default:MEDIUM"`
	Status      string `gorm:"size:11;not null;default:To Do"`
	Tag         string `gorm:"size:7;not null"`

	ProjectID    uint  `gorm:"not null;index"`
	AuthorID     uint  `gorm:"not null;index"`
	AssignedToID *uint `gorm:"index"`

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments   []Comment `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// OwningProjectID resolves the project governing read visibility.
func (i Issue) OwningProjectID() uint { return i.ProjectID }
