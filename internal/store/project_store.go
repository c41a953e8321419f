package store

import (
	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) ProjectStore {
	return ProjectStore{db: db}
}

// CreateWithAuthor persists the project and enrolls its author as a
// contributor in the same transaction, so there is no window where a project
// exists without its author being able to see it.
func (s ProjectStore) CreateWithAuthor(project *models.Project) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		contributor := models.Contributor{
			UserID:    project.AuthorID,
			ProjectID: project.ID,
		}

		return tx.Create(&contributor).Error
	})
}

func (s ProjectStore) FindByID(id uint) (models.Project, error) {
	var project models.Project

	if err := s.db.Preload("Author").First(&project, id).Error; err != nil {
		return models.Project{}, translate(err)
	}

	return project, nil
}

// ListForUser returns the projects the user contributes to.
func (s ProjectStore) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.
		Joins("JOIN contributors ON contributors.project_id = projects.id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ?", userID).
		Distinct("projects.*").
		Preload("Author").
		Order("projects.id").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (s ProjectStore) Save(project *models.Project) error {
	return s.db.Omit(clause.Associations).Save(project).Error
}

// Delete removes the project together with its issues, their comments and
// its contributor rows.
func (s ProjectStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteProjectTx(tx, id)
	})
}
