package store

import (
	"github.com/softdesk-dev/softdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return UserStore{db: db}
}

func (s UserStore) FindByID(id uint) (models.User, error) {
	var user models.User

	if err := s.db.First(&user, id).Error; err != nil {
		return models.User{}, translate(err)
	}

	return user, nil
}

func (s UserStore) FindByUsername(username string) (models.User, error) {
	var user models.User

	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, translate(err)
	}

	return user, nil
}

func (s UserStore) List() ([]models.User, error) {
	var users []models.User

	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s UserStore) Create(user *models.User) error {
	return s.db.Omit(clause.Associations).Create(user).Error
}

func (s UserStore) Save(user *models.User) error {
	return s.db.Omit(clause.Associations).Save(user).Error
}

// Delete implements the right to be forgotten: everything the user authored
// or contributed is removed, while issues merely assigned to them survive
// with the assignment cleared. The rows are deleted for real (no soft
// delete), so the username becomes available again.
func (s UserStore) Delete(id uint) error {
	return s.db.Transaction(func(scoped *gorm.DB) error {
		// The session keeps the unscoped flag on every query derived from tx.
		tx := scoped.Unscoped().Session(&gorm.Session{})

		var projectIDs []uint

		if err := tx.Model(&models.Project{}).Where("author_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		for _, projectID := range projectIDs {
			if err := deleteProjectTx(tx, projectID); err != nil {
				return err
			}
		}

		var issueIDs []uint

		if err := tx.Model(&models.Issue{}).Where("author_id = ?", id).Pluck("id", &issueIDs).Error; err != nil {
			return err
		}

		for _, issueID := range issueIDs {
			if err := deleteIssueTx(tx, issueID); err != nil {
				return err
			}
		}

		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Issue{}).Where("assigned_to_id = ?", id).Update("assigned_to_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
