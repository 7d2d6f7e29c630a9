package handlers

import (
	"net/http"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render wraps c.HTML, adding the current user and any pending flash flags
// (incorrect_time, incorrect_name, not_valid, ...) to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u := middleware.CurrentUser(c); u != nil {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.Username
		data["CurrentUserRole"] = u.Role
	}

	flags := map[string]bool{}
	sess := sessions.Default(c)
	for _, f := range sess.Flashes() {
		if s, ok := f.(string); ok {
			flags[s] = true
		}
	}
	_ = sess.Save()
	data["flags"] = flags

	c.HTML(status, tmpl, data)
}

// fail answers a rejected request. JSON clients get the error with its
// status; browsers are redirected to location with a flash flag.
func (h *Handler) fail(c *gin.Context, err error, location string) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}

	if middleware.WantsJSON(c) || location == "" {
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	sess := sessions.Default(c)
	sess.AddFlash(apperr.Flag(err))
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, location)
}

// finish answers a successful write: payload for JSON clients, a redirect to
// location for browsers.
func finish(c *gin.Context, location string, payload gin.H) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, payload)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

// field reads a form value, falling back to the query string.
func field(c *gin.Context, name string) string {
	if v, ok := c.GetPostForm(name); ok {
		return v
	}
	return c.Query(name)
}
