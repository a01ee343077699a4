package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartstudy/planner/models"
	"github.com/smartstudy/planner/utils"
)

// StatsController exposes the per-user gamification summary.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns XP, level, streak figures and the most recent counted logins.
func (s *StatsController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var records []models.LoginRecord
	if err := s.db.Where("user_id = ?", userID).
		Order("login_date desc").
		Limit(7).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load login records")
		return
	}

	recent := make([]gin.H, 0, len(records))
	for _, r := range records {
		recent = append(recent, gin.H{
			"login_date":      r.LoginDate.Format("2006-01-02"),
			"daily_xp":        r.DailyXP,
			"streak_bonus":    r.StreakBonus,
			"streak_achieved": r.StreakAchieved,
		})
	}

	var pendingTasks, completedTasks int64
	s.db.Model(&models.Task{}).Where("user_id = ? AND status = ?", userID, models.TaskStatusPending).Count(&pendingTasks)
	s.db.Model(&models.Task{}).Where("user_id = ? AND status = ?", userID, models.TaskStatusCompleted).Count(&completedTasks)

	utils.Success(ctx, gin.H{
		"xp":                user.XP,
		"level":             user.Level(),
		"xp_for_next_level": user.XPForNextLevel(),
		"level_progress":    user.LevelProgress(),
		"streak":            user.Streak,
		"total_days_logged": user.TotalDaysLogged,
		"pending_tasks":     pendingTasks,
		"completed_tasks":   completedTasks,
		"recent_logins":     recent,
	})
}
