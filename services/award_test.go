package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartstudy/planner/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.LoginRecord{}))
	return db
}

func seedUserWithTask(t *testing.T, db *gorm.DB) (models.User, models.Task) {
	t.Helper()
	user := models.User{Email: "student@example.com", Username: "student"}
	require.NoError(t, db.Create(&user).Error)
	task := models.Task{UserID: user.ID, Title: "read chapter 4", Status: models.TaskStatusPending}
	require.NoError(t, db.Create(&task).Error)
	return user, task
}

func userXP(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user.XP
}

func TestCompletionAwardGrantsOnce(t *testing.T) {
	db := openTestDB(t)
	user, task := seedUserWithTask(t, db)

	granted, err := ApplyCompletionAward(db, &task, models.TaskStatusPending, models.TaskStatusCompleted, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, granted)
	assert.True(t, task.XPAwarded)
	assert.Equal(t, 5, userXP(t, db, user.ID))
}

func TestCompletionAwardSkipsAlreadyCompleted(t *testing.T) {
	db := openTestDB(t)
	user, task := seedUserWithTask(t, db)

	granted, err := ApplyCompletionAward(db, &task, models.TaskStatusCompleted, models.TaskStatusCompleted, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, granted)
	assert.Equal(t, 0, userXP(t, db, user.ID))
}

func TestCompletionAwardSkipsNonCompletingChange(t *testing.T) {
	db := openTestDB(t)
	user, task := seedUserWithTask(t, db)

	granted, err := ApplyCompletionAward(db, &task, models.TaskStatusPending, models.TaskStatusPending, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, granted)
	assert.Equal(t, 0, userXP(t, db, user.ID))
}

func TestCompletionAwardNotRepeatedAfterReopen(t *testing.T) {
	db := openTestDB(t)
	user, task := seedUserWithTask(t, db)

	granted, err := ApplyCompletionAward(db, &task, models.TaskStatusPending, models.TaskStatusCompleted, 5)
	require.NoError(t, err)
	require.Equal(t, 5, granted)
	task.Status = models.TaskStatusCompleted
	require.NoError(t, db.Save(&task).Error)

	// Reopen, then complete again. The persisted flag blocks a second payout.
	task.Status = models.TaskStatusPending
	require.NoError(t, db.Save(&task).Error)

	granted, err = ApplyCompletionAward(db, &task, models.TaskStatusPending, models.TaskStatusCompleted, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, granted)
	assert.Equal(t, 5, userXP(t, db, user.ID))
}

func TestCompletionAwardZeroAmount(t *testing.T) {
	db := openTestDB(t)
	user, task := seedUserWithTask(t, db)

	granted, err := ApplyCompletionAward(db, &task, models.TaskStatusPending, models.TaskStatusCompleted, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, granted)
	assert.False(t, task.XPAwarded)
	assert.Equal(t, 0, userXP(t, db, user.ID))
}
