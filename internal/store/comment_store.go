package store

import (
	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) CommentStore {
	return CommentStore{db: db}
}

// FindByUUID looks up a comment by its public identifier. The Issue
// association is preloaded so the owning project can be resolved.
func (s CommentStore) FindByUUID(id string) (models.Comment, error) {
	var comment models.Comment

	err := s.db.
		Preload("Issue").
		Preload("Author").
		Where("uuid = ?", id).
		First(&comment).Error

	if err != nil {
		return models.Comment{}, translate(err)
	}

	return comment, nil
}

// ListForUser returns the comments of every issue in the user's projects.
func (s CommentStore) ListForUser(userID uint) ([]models.Comment, error) {
	var comments []models.Comment

	err := s.db.
		Joins("JOIN issues ON issues.id = comments.issue_id AND issues.deleted_at IS NULL").
		Joins("JOIN contributors ON contributors.project_id = issues.project_id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ?", userID).
		Distinct("comments.*").
		Preload("Issue").
		Preload("Author").
		Order("comments.id").
		Find(&comments).Error

	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (s CommentStore) ListForIssue(issueID uint) ([]models.Comment, error) {
	var comments []models.Comment

	err := s.db.Preload("Author").
		Where("issue_id = ?", issueID).
		Order("id").
		Find(&comments).Error

	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (s CommentStore) CountForIssue(issueID uint) (int64, error) {
	var count int64

	err := s.db.Model(&models.Comment{}).
		Where("issue_id = ?", issueID).
		Count(&count).Error

	return count, err
}

func (s CommentStore) Create(comment *models.Comment) error {
	return s.db.Omit(clause.Associations).Create(comment).Error
}

func (s CommentStore) Save(comment *models.Comment) error {
	return s.db.Omit(clause.Associations).Save(comment).Error
}

func (s CommentStore) Delete(id uint) error {
	return s.db.Delete(&models.Comment{}, id).Error
}
