package handlers

import (
	"fmt"
	"strconv"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
)

// activityPage is where an activity form returns to: the project page for
// managers, the caller's home otherwise.
func activityPage(u *models.User, projectID string) string {
	if u != nil && u.Role == models.RoleProjectManager {
		return projectPage(projectID)
	}
	return home(u)
}

func (h *Handler) CreateActivity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	back := activityPage(user, field(c, "project_id"))

	var in workflow.ActivityInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err), back)
		return
	}
	id, err := h.engine.CreateActivity(c.Request.Context(), user, in)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"id": id})
}

func (h *Handler) EditActivity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	back := activityPage(user, field(c, "project_id"))

	var in workflow.ActivityEdit
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err), back)
		return
	}
	n, err := h.engine.EditActivity(c.Request.Context(), user, field(c, "activity_id"), in)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"modified": n})
}

func (h *Handler) SetActivityTranslator(c *gin.Context) {
	user := middleware.CurrentUser(c)
	back := activityPage(user, field(c, "project_id"))

	n, err := h.engine.SetTranslator(c.Request.Context(), user, field(c, "activity"), field(c, "translator_id"))
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"modified": n})
}

func (h *Handler) SetActivityEditor(c *gin.Context) {
	user := middleware.CurrentUser(c)
	back := activityPage(user, field(c, "project_id"))

	n, err := h.engine.SetEditor(c.Request.Context(), user, field(c, "activity"), field(c, "editor_id"))
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"modified": n})
}

// SetActivityEstimatedTime takes the estimate in minutes from the time field.
func (h *Handler) SetActivityEstimatedTime(c *gin.Context) {
	user := middleware.CurrentUser(c)
	back := home(user)

	minutes, err := strconv.Atoi(field(c, "time"))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: time must be a whole number of minutes", apperr.ErrValidation), back)
		return
	}
	n, err := h.engine.SetEstimatedTime(c.Request.Context(), user, field(c, "activity"), minutes)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"modified": n})
}
