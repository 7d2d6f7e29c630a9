package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/auth"
	"translation-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthCookie holds the signed session credential.
const AuthCookie = "Authorization"

const currentUserKey = "CurrentUser"

type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, raw string) (*models.User, error)
}

// InjectUser resolves the session cookie and stores the user in the gin
// context. Requests without a valid session pass through anonymously.
func InjectUser(resolver UserResolver, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AuthCookie)
		if err == nil && raw != "" {
			user, err := resolver.ResolveCurrentUser(c.Request.Context(), raw)
			switch {
			case err == nil:
				c.Set(currentUserKey, user)
			case !errors.Is(err, apperr.ErrAuthenticationFailed):
				log.Error("resolve session", "error", err, "path", c.Request.URL.Path)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by InjectUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// WantsJSON reports whether the client asked for a JSON answer rather than a page.
func WantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}

// deny stops the chain: JSON clients get the error, browsers are redirected.
func deny(c *gin.Context, err error, location string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			deny(c, apperr.ErrAuthenticationFailed, "/login")
			return
		}
		c.Next()
	}
}

// RequireRole lets through users whose role is one of roles. Others are sent
// back to the index page.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			deny(c, apperr.ErrAuthenticationFailed, "/login")
			return
		}
		if err := auth.RequireRole(user, roles...); err != nil {
			deny(c, err, "/")
			return
		}
		c.Next()
	}
}

// RequireCapability is RequireRole with the roles taken from the capability table.
func RequireCapability(op auth.Operation) gin.HandlerFunc {
	return RequireRole(auth.Roles(op)...)
}
