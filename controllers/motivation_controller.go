package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
	"github.com/smartstudy/planner/services"
	"github.com/smartstudy/planner/utils"
)

// MotivationController serves the personalized motivational message.
type MotivationController struct {
	db  *gorm.DB
	svc *services.MotivationService
}

// NewMotivationController creates a MotivationController.
func NewMotivationController(db *gorm.DB) *MotivationController {
	return &MotivationController{db: db, svc: services.NewMotivationService()}
}

// GetMotivation returns a motivational message for the authenticated user.
// Generated messages are cached per user for a short window so a page refresh
// does not burn a model call.
func (m *MotivationController) GetMotivation(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := fmt.Sprintf("cache:motivation:%d", userID)
	if raw, hit := utils.CacheGetBytes(cacheKey); hit {
		var cached map[string]interface{}
		if err := json.Unmarshal(raw, &cached); err == nil {
			utils.Success(ctx, cached)
			return
		}
	}

	var user models.User
	if err := m.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	message := m.svc.GenerateMessage(ctx.Request.Context(), &user)

	payload := gin.H{
		"message":      message,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	ttl := time.Duration(config.Get().MotivationCacheTTLSec) * time.Second
	utils.CacheSetJSON(cacheKey, payload, ttl)

	utils.Success(ctx, payload)
}
