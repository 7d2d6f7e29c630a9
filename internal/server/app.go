package server

import (
	"translation-tracker/internal/auth"
	"translation-tracker/internal/handlers"
	"translation-tracker/internal/repository"
	"translation-tracker/internal/views"
	"translation-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires the repositories, services and handlers over db and returns the
// router. tokenSecret signs session credentials.
func New(db *gorm.DB, tokenSecret string, opts Options) *gin.Engine {
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	activities := repository.NewActivityRepo(db)

	authSvc := auth.NewService(users, tokens, tokenSecret)
	opts.Resolver = authSvc

	h := handlers.New(handlers.Deps{
		Auth:         authSvc,
		Engine:       workflow.New(users, activities, opts.Log),
		Views:        views.New(users, activities),
		Users:        users,
		Tokens:       tokens,
		Activities:   activities,
		Log:          opts.Log,
		CookieMaxAge: opts.CookieMaxAge,
	})
	return NewRouter(opts, h)
}
