// Package store provides one repository per entity over *gorm.DB. Controllers
// depend on these instead of issuing queries directly, and the cascade rules
// live here: gorm.Model soft-deletes rows, so ON DELETE constraints never
// fire and parent deletions must remove their children explicitly, inside
// one transaction.
package store

import (
	"errors"

	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports an absent record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateContributor reports an existing (user, project) pair.
	ErrDuplicateContributor = errors.New("contributor already exists for this project")
	// ErrUserNotFound reports that a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func deleteIssueTx(tx *gorm.DB, issueID uint) error {
	if err := tx.Where("issue_id = ?", issueID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Issue{}, issueID).Error
}

func deleteProjectTx(tx *gorm.DB, projectID uint) error {
	var issueIDs []uint

	if err := tx.Model(&models.Issue{}).Where("project_id = ?", projectID).Pluck("id", &issueIDs).Error; err != nil {
		return err
	}

	if len(issueIDs) > 0 {
		if err := tx.Where("issue_id IN ?", issueIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Issue{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("project_id = ?", projectID).Delete(&models.Contributor{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Project{}, projectID).Error
}
