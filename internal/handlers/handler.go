package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"translation-tracker/internal/auth"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
	"translation-tracker/internal/views"
	"translation-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
)

// TokenSweeper removes every stored session token.
type TokenSweeper interface {
	Find(ctx context.Context, f repository.Filter) ([]models.Token, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Deps struct {
	Auth       *auth.Service
	Engine     *workflow.Engine
	Views      *views.Service
	Users      *repository.UserRepo
	Tokens     TokenSweeper
	Activities *repository.ActivityRepo
	Log        *slog.Logger

	// CookieMaxAge is the lifetime of the auth cookie in seconds.
	CookieMaxAge int
	SecureCookie bool
}

type Handler struct {
	auth       *auth.Service
	engine     *workflow.Engine
	views      *views.Service
	users      *repository.UserRepo
	tokens     TokenSweeper
	activities *repository.ActivityRepo
	log        *slog.Logger

	cookieMaxAge int
	secureCookie bool
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		auth:         d.Auth,
		engine:       d.Engine,
		views:        d.Views,
		users:        d.Users,
		tokens:       d.Tokens,
		activities:   d.Activities,
		log:          log,
		cookieMaxAge: d.CookieMaxAge,
		secureCookie: d.SecureCookie,
	}
}

// home is the landing page of each role.
func home(u *models.User) string {
	if u == nil {
		return "/login"
	}
	switch u.Role {
	case models.RoleProjectManager:
		return "/projects"
	case models.RoleChiefEditor:
		return "/chief_editor"
	case models.RoleTranslator:
		return "/translator"
	}
	return "/"
}

func IndexPage(c *gin.Context) {
	u := middleware.CurrentUser(c)
	render(c, http.StatusOK, "index.html", gin.H{
		"isAuthed": u != nil,
		"home":     home(u),
	})
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
