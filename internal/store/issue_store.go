package store

import (
	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IssueStore struct {
	db *gorm.DB
}

func NewIssueStore(db *gorm.DB) IssueStore {
	return IssueStore{db: db}
}

func (s IssueStore) FindByID(id uint) (models.Issue, error) {
	var issue models.Issue

	err := s.db.
		Preload("Project").
		Preload("Project.Author").
		Preload("Author").
		Preload("AssignedTo").
		First(&issue, id).Error

	if err != nil {
		return models.Issue{}, translate(err)
	}

	return issue, nil
}

// ListForUser returns the issues of every project the user contributes to.
func (s IssueStore) ListForUser(userID uint) ([]models.Issue, error) {
	var issues []models.Issue

	err := s.db.
		Joins("JOIN contributors ON contributors.project_id = issues.project_id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ?", userID).
		Distinct("issues.*").
		Preload("Project").
		Preload("Project.Author").
		Preload("Author").
		Preload("AssignedTo").
		Order("issues.id").
		Find(&issues).Error

	if err != nil {
		return nil, err
	}

	return issues, nil
}

func (s IssueStore) Create(issue *models.Issue) error {
	return s.db.Omit(clause.Associations).Create(issue).Error
}

func (s IssueStore) Save(issue *models.Issue) error {
	return s.db.Omit(clause.Associations).Save(issue).Error
}

// Delete removes the issue and its comments.
func (s IssueStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteIssueTx(tx, id)
	})
}
