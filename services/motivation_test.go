package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartstudy/planner/models"
)

func TestMotivationState(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		xp     int
		want   string
	}{
		{"long streak wins", 14, 0, "streak_master"},
		{"week streak", 7, 0, "consistent"},
		{"young streak", 3, 0, "building_habit"},
		{"high level without streak", 0, 450, "experienced"},
		{"fresh account", 0, 0, "beginner"},
		{"streak outranks level", 8, 900, "consistent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &models.User{Streak: tt.streak, XP: tt.xp}
			assert.Equal(t, tt.want, motivationState(u))
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "morning", timeOfDay(5))
	assert.Equal(t, "morning", timeOfDay(11))
	assert.Equal(t, "afternoon", timeOfDay(12))
	assert.Equal(t, "afternoon", timeOfDay(16))
	assert.Equal(t, "evening", timeOfDay(17))
	assert.Equal(t, "evening", timeOfDay(20))
	assert.Equal(t, "night", timeOfDay(21))
	assert.Equal(t, "night", timeOfDay(3))
}

func TestFallbackPoolTiers(t *testing.T) {
	high := fallbackPool(&models.User{Streak: 9})
	assert.Len(t, high, 5)
	medium := fallbackPool(&models.User{Streak: 4})
	assert.Len(t, medium, 4)
	low := fallbackPool(&models.User{Streak: 1})
	assert.Len(t, low, 5)
}

func TestGenerateMessageFallsBackWithoutBackend(t *testing.T) {
	svc := &MotivationService{nowFn: time.Now}
	user := &models.User{Streak: 8, XP: 250}

	msg := svc.GenerateMessage(context.Background(), user)
	assert.NotEmpty(t, msg)
	assert.Contains(t, fallbackPool(user), msg)
}

func TestBuildContextDefaultsInterests(t *testing.T) {
	svc := &MotivationService{nowFn: func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}}
	pc := svc.buildContext(&models.User{XP: 120, Streak: 2})

	assert.Equal(t, "general studies", pc.Interests)
	assert.Equal(t, 2, pc.Level)
	assert.Equal(t, "morning", pc.TimeOfDay)
	assert.Equal(t, "beginner", pc.State)
	assert.NotEmpty(t, pc.FocusArea)
}
