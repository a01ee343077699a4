package models

import "time"

// Task statuses. A pending->completed transition grants a one-time XP award.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is a to-do item owned by a user.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"type:date;not null" json:"due_date"`
	Status      string    `gorm:"size:20;not null;default:pending" json:"status"`
	// XPAwarded marks that the completion award has been paid out; re-completing
	// a reopened task does not pay again.
	XPAwarded    bool      `gorm:"not null;default:false" json:"-"`
	ReminderSent bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
