package services

import (
	"gorm.io/gorm"

	"github.com/smartstudy/planner/models"
)

// ApplyCompletionAward grants the one-time completion XP when a task moves
// from a non-completed status to completed. Tasks that already paid out keep
// their XPAwarded flag, so reopening and re-completing does not pay again.
// The task's XPAwarded flag is set in memory; the caller persists the task in
// the same transaction. Returns the amount actually granted.
func ApplyCompletionAward(tx *gorm.DB, task *models.Task, oldStatus, newStatus string, amount int) (int, error) {
	if oldStatus == models.TaskStatusCompleted || newStatus != models.TaskStatusCompleted {
		return 0, nil
	}
	if task.XPAwarded || amount <= 0 {
		return 0, nil
	}

	if err := tx.Model(&models.User{}).
		Where("id = ?", task.UserID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
		return 0, err
	}

	task.XPAwarded = true
	return amount, nil
}
