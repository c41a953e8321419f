package store

import (
	"errors"

	"github.com/softdesk-dev/softdesk/internal/authz"
	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
)

type ContributorStore struct {
	db *gorm.DB
}

func NewContributorStore(db *gorm.DB) ContributorStore {
	return ContributorStore{db: db}
}

func (s ContributorStore) Exists(userID, projectID uint) (bool, error) {
	var count int64

	err := s.db.Model(&models.Contributor{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// MembershipFor resolves the caller's relationship to a project-owned entity
// for the authorization policies.
func (s ContributorStore) MembershipFor(callerID, authorID uint, res authz.ProjectOwned) (authz.Membership, error) {
	isContributor, err := s.Exists(callerID, res.OwningProjectID())

	if err != nil {
		return authz.Membership{}, err
	}

	return authz.Membership{
		IsAuthor:      callerID == authorID,
		IsContributor: isContributor,
	}, nil
}

// Add enrolls a user into a project. The target user must exist
// (ErrUserNotFound) and the pair must be new (ErrDuplicateContributor);
// concurrent duplicate adds are serialized by the unique index, so the
// pre-check losing a race still surfaces as ErrDuplicateContributor.
func (s ContributorStore) Add(userID, projectID uint) (models.Contributor, error) {
	var user models.User

	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contributor{}, ErrUserNotFound
		}
		return models.Contributor{}, err
	}

	exists, err := s.Exists(userID, projectID)

	if err != nil {
		return models.Contributor{}, err
	}

	if exists {
		return models.Contributor{}, ErrDuplicateContributor
	}

	contributor := models.Contributor{UserID: userID, ProjectID: projectID}

	if err := s.db.Create(&contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Contributor{}, ErrDuplicateContributor
		}
		return models.Contributor{}, err
	}

	contributor.User = user

	return contributor, nil
}

func (s ContributorStore) ListForProject(projectID uint) ([]models.Contributor, error) {
	var contributors []models.Contributor

	err := s.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("id").
		Find(&contributors).Error

	if err != nil {
		return nil, err
	}

	return contributors, nil
}

func (s ContributorStore) CountForProject(projectID uint) (int64, error) {
	var count int64

	err := s.db.Model(&models.Contributor{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}
