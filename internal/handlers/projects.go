package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
)

// ListProjects is the manager's paginated project list. archive=true shows
// finished projects.
func (h *Handler) ListProjects(c *gin.Context) {
	archive := c.Query("archive") == "true"
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	data, err := h.views.ManagerProjects(c.Request.Context(), archive, page)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	render(c, http.StatusOK, "projects.html", gin.H{
		"page":          data,
		"chief_editors": data.ChiefEditors,
		"translators":   data.Translators,
		"projects":      data.Projects,
		"all_projects":  data.AllProjects,
		"current_page":  data.CurrentPage,
		"num_of_pages":  data.Pages,
		"archive":       data.Archive,
	})
}

func (h *Handler) ShowProject(c *gin.Context) {
	d, err := h.views.ManagerProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperr.Status(err) == http.StatusNotFound && !middleware.WantsJSON(c) {
			c.Redirect(http.StatusSeeOther, "/projects")
			return
		}
		h.fail(c, err, "")
		return
	}
	user := middleware.CurrentUser(c)
	render(c, http.StatusOK, "project.html", gin.H{
		"detail":              d,
		"project":             d.Project,
		"project_activities":  d.Activities,
		"project_translators": d.ProjectTranslators,
		"chief_editors":       d.ChiefEditors,
		"translators":         d.Translators,
		"all_projects":        d.AllProjects,
		"next_statuses":       workflow.NextStatuses(user.Role, d.Project.ProjectStatus),
	})
}

func projectPage(id string) string {
	if id == "" {
		return "/projects"
	}
	return "/project/" + id
}

func (h *Handler) CreateProject(c *gin.Context) {
	var in workflow.ProjectInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err), "/projects")
		return
	}
	id, err := h.engine.CreateProject(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.fail(c, err, "/projects")
		return
	}
	finish(c, "/projects", gin.H{"id": id})
}

func (h *Handler) EditProject(c *gin.Context) {
	var in workflow.ProjectInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err), "/projects")
		return
	}
	id := field(c, "project_id")
	n, err := h.engine.EditProject(c.Request.Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		h.fail(c, err, projectPage(id))
		return
	}
	finish(c, projectPage(id), gin.H{"modified": n})
}

func (h *Handler) ChangeChiefEditor(c *gin.Context) {
	id := field(c, "project_id")
	n, err := h.engine.ChangeChiefEditor(c.Request.Context(), middleware.CurrentUser(c), id, field(c, "editor"))
	if err != nil {
		h.fail(c, err, projectPage(id))
		return
	}
	finish(c, projectPage(id), gin.H{"modified": n})
}

// ChangeProjectStatus is shared by managers and chief editors; each goes back
// to their own page.
func (h *Handler) ChangeProjectStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := field(c, "project_id")
	back := projectPage(id)
	if user.Role == models.RoleChiefEditor {
		back = home(user)
	}

	n, err := h.engine.ChangeProjectStatus(c.Request.Context(), user, id, models.ProjectStatus(field(c, "status")))
	if err != nil {
		h.fail(c, err, back)
		return
	}
	finish(c, back, gin.H{"modified": n})
}
