package handlers

import (
	"net/http"

	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TranslatorHome(c *gin.Context) {
	page, err := h.views.TranslatorHome(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	render(c, http.StatusOK, "translator.html", gin.H{
		"current_user": page.User,
		"activities":   page.Activities,
	})
}

func (h *Handler) ChiefEditorHome(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, err := h.views.ChiefEditorHome(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	next := map[string][]models.ProjectStatus{}
	for _, p := range page.Projects {
		next[p.ID] = workflow.NextStatuses(user.Role, p.ProjectStatus)
	}
	render(c, http.StatusOK, "chief_editor.html", gin.H{
		"current_chief_editor":    page.User,
		"projects":                page.Projects,
		"chief_editor_activities": page.Activities,
		"next_statuses":           next,
	})
}

// ManagerTranslator shows a translator's tasks to a project manager.
func (h *Handler) ManagerTranslator(c *gin.Context) {
	page, err := h.views.ManagerTranslator(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	render(c, http.StatusOK, "translator_pm.html", gin.H{
		"chief_editors":      page.ChiefEditors,
		"translators":        page.Translators,
		"all_projects":       page.AllProjects,
		"current_translator": page.User,
		"activities":         page.Activities,
	})
}

// ManagerChiefEditor shows a chief editor's projects and tasks to a project manager.
func (h *Handler) ManagerChiefEditor(c *gin.Context) {
	page, err := h.views.ManagerChiefEditor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	render(c, http.StatusOK, "chief_editor_pm.html", gin.H{
		"chief_editors":           page.ChiefEditors,
		"translators":             page.Translators,
		"all_projects":            page.AllProjects,
		"current_chief_editor":    page.User,
		"projects":                page.Projects,
		"chief_editor_activities": page.Activities,
	})
}
