package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{"zero xp is level 1", 0, 1},
		{"just below threshold", 99, 1},
		{"exactly at threshold", 100, 2},
		{"mid bucket", 250, 3},
		{"high xp", 1050, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{XP: tt.xp}
			assert.Equal(t, tt.want, u.Level())
		})
	}
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 100, (&User{XP: 0}).XPForNextLevel())
	assert.Equal(t, 1, (&User{XP: 99}).XPForNextLevel())
	assert.Equal(t, 100, (&User{XP: 100}).XPForNextLevel())
	assert.Equal(t, 50, (&User{XP: 150}).XPForNextLevel())
}

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 0.0, (&User{XP: 0}).LevelProgress())
	assert.Equal(t, 50.0, (&User{XP: 150}).LevelProgress())
	assert.Equal(t, 99.0, (&User{XP: 199}).LevelProgress())
	assert.Equal(t, 0.0, (&User{XP: 200}).LevelProgress())
}
