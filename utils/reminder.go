package utils

import (
	"fmt"
	"time"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
)

// StartDueTaskReminder launches a background goroutine that periodically mails
// owners of pending tasks whose due date falls within the reminder window.
// It is best-effort and logs failures.
func StartDueTaskReminder(interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			c := config.Get()
			if !c.RemindersOn {
				continue
			}
			db := config.DB()
			if db == nil {
				continue
			}

			window := time.Now().Add(time.Duration(c.ReminderHours) * time.Hour)
			var tasks []models.Task
			err := db.Where("status = ? AND reminder_sent = ? AND due_date <= ?",
				models.TaskStatusPending, false, window).
				Limit(100).Find(&tasks).Error
			if err != nil {
				Sugar.Warnf("reminder query failed: %v", err)
				continue
			}

			for _, task := range tasks {
				var owner models.User
				if err := db.First(&owner, task.UserID).Error; err != nil {
					continue
				}
				subject := fmt.Sprintf("Task due soon: %s", task.Title)
				body := fmt.Sprintf("Your task %q is due on %s. Keep the streak going!",
					task.Title, task.DueDate.Format("2006-01-02"))
				if err := SendMail(owner.Email, subject, body); err != nil {
					Sugar.Warnf("reminder mail to user %d failed: %v", owner.ID, err)
					continue
				}
				if err := db.Model(&models.Task{}).Where("id = ?", task.ID).
					UpdateColumn("reminder_sent", true).Error; err != nil {
					Sugar.Warnf("reminder flag update failed for task %d: %v", task.ID, err)
				}
			}
		}
	}()
}
