package server

import (
	"html/template"
	"log/slog"
	"time"

	"translation-tracker/internal/auth"
	"translation-tracker/internal/handlers"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"
	"translation-tracker/internal/workflow"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	SessionSecret string
	CookieMaxAge  int
	// TemplatesGlob is loaded unless Templates is set. Templates must be
	// parsed with FuncMap.
	TemplatesGlob string
	Templates     *template.Template
	StaticDir     string

	Redis     *redis.Client
	LoginRate middleware.RateLimitConfig

	Resolver middleware.UserResolver
	Log      *slog.Logger
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format(workflow.DateLayout)
		},
		"add": func(a, b int) int { return a + b },
		"isProjectManager": func(u *models.User) bool {
			return u != nil && u.Role == models.RoleProjectManager
		},
	}
}

func NewRouter(opts Options, h *handlers.Handler) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log, "/health"))

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	if opts.Templates != nil {
		r.SetHTMLTemplate(opts.Templates)
	} else {
		r.SetFuncMap(FuncMap())
		r.LoadHTMLGlob(opts.TemplatesGlob)
	}

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: opts.CookieMaxAge, HttpOnly: true})
	r.Use(sessions.Sessions("tracker_session", store))

	r.Use(middleware.InjectUser(opts.Resolver, log))

	// pages
	r.GET("/", handlers.IndexPage)
	r.GET("/health", handlers.Health)

	// auth
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login_form", middleware.RateLimit(opts.LoginRate, opts.Redis, log), h.LoginForm)
	r.POST("/sign-up", h.SignUp)
	r.POST("/logout", h.Logout)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())

	authed.GET("/me", handlers.Me)
	authed.GET("/user/status", handlers.GetStatus)
	authed.POST("/user/status", middleware.RequireCapability(auth.OpSetUserStatus), h.SetStatus)

	// manager pages
	manage := middleware.RequireCapability(auth.OpManage)
	authed.GET("/projects", manage, h.ListProjects)
	authed.GET("/project/:id", manage, h.ShowProject)
	authed.GET("/translator/:id", manage, h.ManagerTranslator)
	authed.GET("/chief_editor/:id", manage, h.ManagerChiefEditor)

	// role homes
	authed.GET("/translator", middleware.RequireCapability(auth.OpTranslatorHome), h.TranslatorHome)
	authed.GET("/chief_editor", middleware.RequireCapability(auth.OpChiefEditorHome), h.ChiefEditorHome)

	// projects
	authed.POST("/create_project", middleware.RequireCapability(auth.OpCreateProject), h.CreateProject)
	authed.POST("/edit_project", middleware.RequireCapability(auth.OpEditProject), h.EditProject)
	authed.POST("/project/change_chief_editor", middleware.RequireCapability(auth.OpChangeChiefEditor), h.ChangeChiefEditor)
	authed.POST("/project/change_status", middleware.RequireCapability(auth.OpChangeProjectStatus), h.ChangeProjectStatus)

	// activities
	authed.POST("/project/create_activity", middleware.RequireCapability(auth.OpCreateActivity), h.CreateActivity)
	authed.POST("/project/edit_activity", middleware.RequireCapability(auth.OpEditActivity), h.EditActivity)
	authed.POST("/user/set_activity_translator", middleware.RequireCapability(auth.OpSetTranslator), h.SetActivityTranslator)
	authed.POST("/user/set_activity_editor", middleware.RequireCapability(auth.OpSetEditor), h.SetActivityEditor)
	authed.POST("/set_activity_estimated_time", middleware.RequireCapability(auth.OpSetEstimatedTime), h.SetActivityEstimatedTime)

	// read API
	authed.GET("/get_projects", h.GetProjects)
	authed.GET("/get_project/:id", h.GetProject)
	authed.GET("/get_activities", h.GetActivities)
	authed.GET("/get_project_names", h.GetProjectNames)
	authed.GET("/get_user/:id", h.GetUser)
	authed.GET("/get_list_of_users", h.GetListOfUsers)

	// administration
	authed.GET("/users_list", manage, h.UsersList)
	authed.GET("/tokens", manage, h.TokensList)
	authed.POST("/delete_tokens", manage, h.DeleteTokens)
	authed.POST("/delete", manage, h.DeleteUser)

	return r
}
