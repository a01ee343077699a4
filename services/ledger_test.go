package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstudy/planner/models"
)

func testLedger() *Ledger {
	return &Ledger{DailyXP: 10, StreakBonusXP: 70, BonusInterval: 7}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyFirstLogin(t *testing.T) {
	l := testLedger()
	user := &models.User{}

	out, err := l.Apply(user, day(2025, 3, 10))
	require.NoError(t, err)

	assert.Equal(t, 10, out.DailyXP)
	assert.Equal(t, 0, out.StreakBonus)
	assert.Equal(t, 1, out.CurrentStreak)
	assert.Equal(t, 10, out.TotalXP)

	assert.Equal(t, 1, user.Streak)
	assert.Equal(t, 1, user.TotalDaysLogged)
	require.NotNil(t, user.LastLoginDate)
	assert.Equal(t, day(2025, 3, 10), *user.LastLoginDate)
}

func TestApplySameDayIsNoOp(t *testing.T) {
	l := testLedger()
	user := &models.User{}

	_, err := l.Apply(user, day(2025, 3, 10))
	require.NoError(t, err)
	before := *user

	out, err := l.Apply(user, day(2025, 3, 10))
	assert.ErrorIs(t, err, ErrAlreadyLoggedToday)
	assert.Nil(t, out)
	assert.Equal(t, before, *user)
}

func TestApplyConsecutiveDayExtendsStreak(t *testing.T) {
	l := testLedger()
	user := &models.User{}

	_, err := l.Apply(user, day(2025, 3, 10))
	require.NoError(t, err)

	out, err := l.Apply(user, day(2025, 3, 11))
	require.NoError(t, err)

	assert.Equal(t, 2, out.CurrentStreak)
	assert.Equal(t, 20, user.XP)
	assert.Equal(t, 2, user.TotalDaysLogged)
}

func TestApplyGapResetsStreak(t *testing.T) {
	l := testLedger()
	last := day(2025, 3, 10)
	user := &models.User{XP: 50, Streak: 5, TotalDaysLogged: 5, LastLoginDate: &last}

	out, err := l.Apply(user, day(2025, 3, 13))
	require.NoError(t, err)

	assert.Equal(t, 1, out.CurrentStreak)
	assert.Equal(t, 0, out.StreakBonus)
	assert.Equal(t, 60, user.XP)
	assert.Equal(t, 6, user.TotalDaysLogged)
}

func TestApplySeventhDayGrantsBonus(t *testing.T) {
	l := testLedger()
	last := day(2025, 3, 10)
	user := &models.User{XP: 640, Streak: 6, TotalDaysLogged: 6, LastLoginDate: &last}

	out, err := l.Apply(user, day(2025, 3, 11))
	require.NoError(t, err)

	assert.Equal(t, 7, out.CurrentStreak)
	assert.Equal(t, 10, out.DailyXP)
	assert.Equal(t, 70, out.StreakBonus)
	assert.Equal(t, 720, out.TotalXP)
	assert.Equal(t, 720, user.XP)
}

func TestApplyBonusRepeatsEveryInterval(t *testing.T) {
	l := testLedger()
	last := day(2025, 3, 10)
	user := &models.User{XP: 0, Streak: 13, TotalDaysLogged: 13, LastLoginDate: &last}

	out, err := l.Apply(user, day(2025, 3, 11))
	require.NoError(t, err)

	assert.Equal(t, 14, out.CurrentStreak)
	assert.Equal(t, 70, out.StreakBonus)
}

func TestApplyRejectsBackwardsDate(t *testing.T) {
	l := testLedger()
	last := day(2025, 3, 10)
	user := &models.User{XP: 30, Streak: 3, TotalDaysLogged: 3, LastLoginDate: &last}
	before := *user

	out, err := l.Apply(user, day(2025, 3, 9))
	assert.ErrorIs(t, err, ErrNonMonotonicDate)
	assert.Nil(t, out)
	assert.Equal(t, before, *user)
}

func TestApplyIgnoresTimeOfDay(t *testing.T) {
	l := testLedger()
	user := &models.User{}

	_, err := l.Apply(user, time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)

	// A minute later, past midnight, is a new day.
	out, err := l.Apply(user, time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, out.CurrentStreak)
}

func TestDateOf(t *testing.T) {
	got := DateOf(time.Date(2025, 3, 10, 18, 42, 7, 123, time.UTC))
	assert.Equal(t, day(2025, 3, 10), got)
}
