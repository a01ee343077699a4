package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
)

// LoginOutcome describes what a counted daily login granted.
type LoginOutcome struct {
	DailyXP       int `json:"daily_xp"`
	StreakBonus   int `json:"streak_bonus"`
	CurrentStreak int `json:"current_streak"`
	TotalXP       int `json:"total_xp"`
}

var (
	// ErrAlreadyLoggedToday signals that today's login was already counted; the
	// account is left untouched.
	ErrAlreadyLoggedToday = errors.New("already logged in today")
	// ErrNonMonotonicDate signals that the supplied date precedes the last
	// counted login. The caller must supply dates that move forward; failing
	// loudly beats silently corrupting the streak.
	ErrNonMonotonicDate = errors.New("login date precedes last counted login")
)

// Ledger applies daily-login streak and XP bookkeeping to user accounts.
type Ledger struct {
	DailyXP       int
	StreakBonusXP int
	BonusInterval int
}

// NewLedger builds a Ledger from the loaded configuration.
func NewLedger() *Ledger {
	cfg := config.Get()
	return &Ledger{
		DailyXP:       cfg.DailyLoginXP,
		StreakBonusXP: cfg.StreakBonusXP,
		BonusInterval: cfg.StreakBonusInterval,
	}
}

// DateOf strips the time-of-day component, returning midnight UTC of the civil date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Apply runs the daily-login state transition on the account in memory.
//
// First-ever login starts the streak at 1; a consecutive-day login extends it;
// a gap resets it to 1. Every counted login grants DailyXP, and every
// BonusInterval-th consecutive day additionally grants StreakBonusXP. A repeat
// login on the same day returns ErrAlreadyLoggedToday and mutates nothing.
func (l *Ledger) Apply(user *models.User, today time.Time) (*LoginOutcome, error) {
	day := DateOf(today)

	if user.LastLoginDate == nil {
		user.Streak = 1
		user.TotalDaysLogged = 1
		user.XP += l.DailyXP
		user.LastLoginDate = &day
		return &LoginOutcome{
			DailyXP:       l.DailyXP,
			StreakBonus:   0,
			CurrentStreak: user.Streak,
			TotalXP:       user.XP,
		}, nil
	}

	gap := int(day.Sub(DateOf(*user.LastLoginDate)) / (24 * time.Hour))
	switch {
	case gap == 0:
		return nil, ErrAlreadyLoggedToday
	case gap < 0:
		return nil, ErrNonMonotonicDate
	case gap == 1:
		user.Streak++
	default:
		user.Streak = 1
	}

	user.XP += l.DailyXP
	bonus := 0
	if l.BonusInterval > 0 && user.Streak%l.BonusInterval == 0 {
		bonus = l.StreakBonusXP
		user.XP += bonus
	}

	user.LastLoginDate = &day
	user.TotalDaysLogged++

	return &LoginOutcome{
		DailyXP:       l.DailyXP,
		StreakBonus:   bonus,
		CurrentStreak: user.Streak,
		TotalXP:       user.XP,
	}, nil
}

// Record applies the daily-login transition to the stored account inside a
// transaction with a row lock, appending a LoginRecord audit row. On
// ErrAlreadyLoggedToday or ErrNonMonotonicDate nothing is persisted.
func (l *Ledger) Record(db *gorm.DB, userID uint, today time.Time) (*models.User, *LoginOutcome, error) {
	var user models.User
	var outcome *LoginOutcome

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		out, err := l.Apply(&user, today)
		if err != nil {
			return err
		}
		outcome = out

		record := models.LoginRecord{
			UserID:         user.ID,
			LoginDate:      *user.LastLoginDate,
			DailyXP:        out.DailyXP,
			StreakBonus:    out.StreakBonus,
			StreakAchieved: out.CurrentStreak,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, outcome, nil
}
