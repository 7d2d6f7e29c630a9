package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UsersList(c *gin.Context) {
	users, err := h.users.Find(c.Request.Context(), nil)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) TokensList(c *gin.Context) {
	tokens, err := h.tokens.Find(c.Request.Context(), nil)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// DeleteTokens revokes every session, the caller's included.
func (h *Handler) DeleteTokens(c *gin.Context) {
	n, err := h.tokens.DeleteAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.log.Warn("all session tokens deleted", "user", middleware.CurrentUser(c).ID, "count", n)
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := strings.TrimSpace(field(c, "id"))
	if id == "" {
		h.fail(c, fmt.Errorf("%w: id is required", apperr.ErrValidation), "")
		return
	}
	n, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if n == 0 {
		h.fail(c, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound), "")
		return
	}
	h.log.Warn("user deleted", "user", middleware.CurrentUser(c).ID, "deleted", id)
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// GetProjects returns project rows; status filters on project_status.
func (h *Handler) GetProjects(c *gin.Context) {
	var statuses []models.ProjectStatus
	if s := c.Query("status"); s != "" {
		statuses = append(statuses, models.ProjectStatus(s))
	}
	projects, err := h.activities.FindProjects(c.Request.Context(), statuses...)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.activities.FindProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetActivities returns every row of a project, its own initial row included.
func (h *Handler) GetActivities(c *gin.Context) {
	rows, err := h.activities.FindByProject(c.Request.Context(), c.Query("project"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetProjectNames(c *gin.Context) {
	names, err := h.activities.ProjectNames(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetListOfUsers returns id/username pairs of users with the given role.
func (h *Handler) GetListOfUsers(c *gin.Context) {
	f := repository.Filter{}
	if role := models.UserRole(c.Query("role")); role != "" {
		if !role.Valid() {
			h.fail(c, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role), "")
			return
		}
		f["role"] = role
	}
	users, err := h.users.Find(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	refs := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	c.JSON(http.StatusOK, refs)
}
