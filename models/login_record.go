package models

import "time"

// LoginRecord stores one audit row per counted daily login.
type LoginRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	LoginDate      time.Time `gorm:"type:date;index;not null" json:"login_date"`
	DailyXP        int       `json:"daily_xp"`
	StreakBonus    int       `json:"streak_bonus"`
	StreakAchieved int       `json:"streak_achieved"`
	CreatedAt      time.Time `json:"created_at"`
}
