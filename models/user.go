package models

import (
	"time"

	"gorm.io/gorm"
)

// xpPerLevel is the width of a level bucket; level 1 starts at 0 XP.
const xpPerLevel = 100

// User represents a study planner account. Passwords are stored as bcrypt hashes only.
// Gamification columns are NOT NULL with zero defaults and are set explicitly at
// registration, so update paths never need to backfill them.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:120" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Interests    string `gorm:"size:300" json:"interests"`
	Provider     string `gorm:"size:32" json:"provider"`
	ProviderID   string `gorm:"size:255" json:"provider_id"`
	AvatarURL    string `gorm:"size:512" json:"avatar_url"`

	XP              int        `gorm:"not null;default:0" json:"xp"`
	Streak          int        `gorm:"not null;default:0" json:"streak"`
	LastLoginDate   *time.Time `gorm:"type:date" json:"last_login_date"`
	TotalDaysLogged int        `gorm:"not null;default:0" json:"total_days_logged"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Tasks     []Task         `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Level derives the user's level from cumulative XP. Levels are 100-XP-wide
// buckets, so 0-99 XP is level 1, 100-199 is level 2, and so on.
func (u *User) Level() int {
	return u.XP/xpPerLevel + 1
}

// XPForNextLevel returns how much XP is still needed to reach the next level.
func (u *User) XPForNextLevel() int {
	return u.Level()*xpPerLevel - u.XP
}

// LevelProgress returns the position inside the current level bucket as a
// percentage in [0, 100).
func (u *User) LevelProgress() float64 {
	base := (u.Level() - 1) * xpPerLevel
	return float64(u.XP-base) / xpPerLevel * 100
}
