package models_test

import (
	"fmt"
	"testing"

	"github.com/softdesk-dev/softdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	))

	return db
}

func intPtr(v int) *int { return &v }

func TestUserMinimumAge(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		name    string
		age     *int
		wantErr bool
	}{
		{"missing age", nil, true},
		{"under fifteen", intPtr(14), true},
		{"exactly fifteen", intPtr(15), false},
		{"adult", intPtr(42), false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.User{
				Username:     fmt.Sprintf("user-%d", i),
				Email:        fmt.Sprintf("user-%d@example.com", i),
				PasswordHash: "x",
				Age:          tt.age,
			}

			err := db.Create(&user).Error

			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrUnderage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserMinimumAgeOnUpdate(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Age: intPtr(20)}
	require.NoError(t, db.Create(&user).Error)

	user.Age = intPtr(12)
	assert.ErrorIs(t, db.Save(&user).Error, models.ErrUnderage)
}

func TestSuperuserExemptFromAgeRule(t *testing.T) {
	db := openTestDB(t)

	admin := models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "x", IsSuperuser: true}
	assert.NoError(t, db.Create(&admin).Error)
}

func TestCommentGeneratesUUID(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Age: intPtr(30)}
	require.NoError(t, db.Create(&user).Error)

	project := models.Project{Title: "p", Description: "d", Type: "back-end", AuthorID: user.ID}
	require.NoError(t, db.Create(&project).Error)

	issue := models.Issue{Title: "i", Description: "d", Priority: "MEDIUM", Status: "To Do", Tag: "BUG", ProjectID: project.ID, AuthorID: user.ID}
	require.NoError(t, db.Create(&issue).Error)

	first := models.Comment{Description: "one", IssueID: issue.ID, AuthorID: user.ID}
	second := models.Comment{Description: "two", IssueID: issue.ID, AuthorID: user.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	assert.Len(t, first.UUID, 36)
	assert.Len(t, second.UUID, 36)
	assert.NotEqual(t, first.UUID, second.UUID)
}
