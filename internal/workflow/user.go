package workflow

import (
	"context"
	"fmt"
	"strings"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/auth"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
)

// SetUserStatus updates the free-text status of a user. Users may only set
// their own status; a project manager may set anyone's.
func (e *Engine) SetUserStatus(ctx context.Context, caller *models.User, userID, status string) (int64, error) {
	if err := auth.Authorize(caller, auth.OpSetUserStatus); err != nil {
		return 0, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = caller.ID
	}
	if userID != caller.ID && caller.Role != models.RoleProjectManager {
		return 0, fmt.Errorf("%w: cannot set another user's status", apperr.ErrRoleMismatch)
	}
	if _, err := e.users.FindByID(ctx, userID); err != nil {
		return 0, fmt.Errorf("user %s: %w", userID, err)
	}

	n, err := e.users.Update(ctx, userID, repository.Fields{"status": strings.TrimSpace(status)})
	if err != nil {
		return 0, err
	}
	e.log.Info("user status set", "op", auth.OpSetUserStatus, "user", caller.ID, "target", userID)
	return n, nil
}
