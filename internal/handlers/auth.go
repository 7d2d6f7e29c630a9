package handlers

import (
	"fmt"
	"net/http"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/auth"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"not_valid": c.Query("not_valid") == "true",
	})
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *auth.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, sess.Credential, h.cookieMaxAge, "/", "", h.secureCookie, true)
}

// LoginForm checks the credentials, sets the session cookie and sends the
// user to their role's home page.
func (h *Handler) LoginForm(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, apperr.ErrAuthenticationFailed, "/login")
		return
	}

	user, sess, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.fail(c, err, "/login")
		return
	}
	h.setSessionCookie(c, sess)
	h.log.Info("user logged in", "user", user.ID, "role", user.Role)

	finish(c, home(user), gin.H{
		"access_token": sess.Credential,
		"token_type":   sess.Token.TokenType,
		"expires":      sess.Token.ExpiresAt,
	})
}

// SignUp registers a user. Project manager accounts can only be created by a
// signed-in project manager.
func (h *Handler) SignUp(c *gin.Context) {
	var in auth.SignUpInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err), "")
		return
	}
	if in.Role == models.RoleProjectManager {
		if err := auth.Authorize(middleware.CurrentUser(c), auth.OpManage); err != nil {
			h.fail(c, err, "")
			return
		}
	}

	user, sess, err := h.auth.SignUp(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.log.Info("user signed up", "user", user.ID, "role", user.Role)

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"access_token": sess.Credential,
		"token_type":   sess.Token.TokenType,
		"expires":      sess.Token.ExpiresAt,
	})
}

// Logout revokes the session token and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(middleware.AuthCookie); err == nil {
		if err := h.auth.Revoke(c.Request.Context(), raw); err != nil {
			h.log.Warn("revoke session", "error", err)
		}
	}
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", h.secureCookie, true)
	finish(c, "/login", gin.H{"logged_out": true})
}

func Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func GetStatus(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "status": u.Status})
}

// SetStatus sets the caller's status, or with user_id another user's when the
// caller is a project manager.
func (h *Handler) SetStatus(c *gin.Context) {
	status := field(c, "status")
	if status == "" {
		status = field(c, "user_status")
	}
	n, err := h.engine.SetUserStatus(c.Request.Context(), middleware.CurrentUser(c), field(c, "user_id"), status)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": n})
}
