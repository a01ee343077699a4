package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
	"github.com/smartstudy/planner/services"
	"github.com/smartstudy/planner/utils"
)

// TaskController handles owner-scoped study-task CRUD. Completing a task pays
// out XP through services.ApplyCompletionAward inside the update transaction.
type TaskController struct {
	db *gorm.DB
}

// NewTaskController creates a TaskController.
func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{db: db}
}

// parseDueDate accepts a bare date or a full timestamp and keeps the date part.
func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return services.DateOf(t), nil
}

func taskResponse(task models.Task) gin.H {
	return gin.H{
		"id":          task.ID,
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate.Format("2006-01-02"),
		"status":      task.Status,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}
}

// ListTasks returns the authenticated user's tasks ordered by due date.
func (t *TaskController) ListTasks(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var tasks []models.Task
	query := t.db.Where("user_id = ?", userID)
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("due_date asc, id asc").Find(&tasks).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list tasks")
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskResponse(task))
	}
	utils.Success(ctx, gin.H{"tasks": out, "count": len(out)})
}

// CreateTask creates a pending task for the authenticated user.
func (t *TaskController) CreateTask(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required,max=200"`
		Description string `json:"description"`
		DueDate     string `json:"due_date" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid due_date, expected YYYY-MM-DD")
		return
	}

	task := models.Task{
		UserID:      userID,
		Title:       utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(strings.TrimSpace(req.Description)),
		DueDate:     dueDate,
		Status:      models.TaskStatusPending,
	}
	if task.Title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40042, "title must not be empty")
		return
	}

	if err := t.db.Create(&task).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create task")
		return
	}

	utils.Success(ctx, taskResponse(task))
}

// UpdateTask modifies an owned task. A pending to completed transition awards
// completion XP once per task; re-completing later awards nothing.
func (t *TaskController) UpdateTask(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid task id")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		Status      *string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if req.Status != nil && *req.Status != models.TaskStatusPending && *req.Status != models.TaskStatusCompleted {
		utils.Error(ctx, http.StatusBadRequest, 40044, "status must be pending or completed")
		return
	}

	var task models.Task
	var awarded int
	err = t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
			return err
		}
		oldStatus := task.Status

		if req.Title != nil {
			title := utils.SanitizePlain(strings.TrimSpace(*req.Title))
			if title == "" {
				return errEmptyTitle
			}
			task.Title = title
		}
		if req.Description != nil {
			task.Description = utils.Sanitize(strings.TrimSpace(*req.Description))
		}
		if req.DueDate != nil {
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return errBadDueDate
			}
			task.DueDate = dueDate
		}
		if req.Status != nil {
			task.Status = *req.Status
		}

		xp, err := services.ApplyCompletionAward(tx, &task, oldStatus, task.Status, config.Get().TaskCompletionXP)
		if err != nil {
			return err
		}
		awarded = xp

		return tx.Save(&task).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(ctx, http.StatusNotFound, 40440, "task not found")
		case errors.Is(err, errEmptyTitle):
			utils.Error(ctx, http.StatusBadRequest, 40042, "title must not be empty")
		case errors.Is(err, errBadDueDate):
			utils.Error(ctx, http.StatusBadRequest, 40041, "invalid due_date, expected YYYY-MM-DD")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to update task")
		}
		return
	}

	resp := taskResponse(task)
	resp["awarded_xp"] = awarded
	utils.Success(ctx, resp)
}

// DeleteTask removes an owned task.
func (t *TaskController) DeleteTask(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid task id")
		return
	}

	res := t.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to delete task")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40440, "task not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "task deleted"})
}

var (
	errEmptyTitle = errors.New("title must not be empty")
	errBadDueDate = errors.New("invalid due date")
)
