package auth

import (
	"fmt"
	"slices"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"
)

// Operation names an action that is gated by role.
type Operation string

const (
	OpCreateProject       Operation = "create_project"
	OpEditProject         Operation = "edit_project"
	OpChangeChiefEditor   Operation = "change_chief_editor"
	OpChangeProjectStatus Operation = "change_project_status"
	OpCreateActivity      Operation = "create_activity"
	OpEditActivity        Operation = "edit_activity"
	OpSetTranslator       Operation = "set_activity_translator"
	OpSetEditor           Operation = "set_activity_editor"
	OpSetEstimatedTime    Operation = "set_activity_estimated_time"
	OpSetUserStatus       Operation = "set_user_status"
	OpManage              Operation = "manage"
	OpTranslatorHome      Operation = "translator_home"
	OpChiefEditorHome     Operation = "chief_editor_home"
)

var (
	managerOnly = []models.UserRole{models.RoleProjectManager}
	anyRole     = []models.UserRole{models.RoleProjectManager, models.RoleChiefEditor, models.RoleTranslator}
)

// capabilities lists, per operation, the roles allowed to perform it.
var capabilities = map[Operation][]models.UserRole{
	OpCreateProject:       managerOnly,
	OpEditProject:         managerOnly,
	OpChangeChiefEditor:   managerOnly,
	OpChangeProjectStatus: {models.RoleProjectManager, models.RoleChiefEditor},
	OpCreateActivity:      {models.RoleProjectManager, models.RoleChiefEditor},
	OpEditActivity:        {models.RoleProjectManager, models.RoleChiefEditor},
	OpSetTranslator:       managerOnly,
	OpSetEditor:           managerOnly,
	OpSetEstimatedTime:    {models.RoleTranslator},
	OpSetUserStatus:       anyRole,
	OpManage:              managerOnly,
	OpTranslatorHome:      {models.RoleTranslator},
	OpChiefEditorHome:     {models.RoleChiefEditor},
}

// Roles returns the roles allowed to perform op.
func Roles(op Operation) []models.UserRole {
	return slices.Clone(capabilities[op])
}

// Authorize fails with apperr.ErrAuthenticationFailed for a nil user and with
// apperr.ErrRoleMismatch when the user's role may not perform op.
func Authorize(user *models.User, op Operation) error {
	if user == nil {
		return apperr.ErrAuthenticationFailed
	}
	roles, ok := capabilities[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", apperr.ErrRoleMismatch, op)
	}
	if err := RequireRole(user, roles...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RequireRole succeeds when user has one of roles.
func RequireRole(user *models.User, roles ...models.UserRole) error {
	if user == nil {
		return apperr.ErrAuthenticationFailed
	}
	if slices.Contains(roles, user.Role) {
		return nil
	}
	return fmt.Errorf("%w: %q", apperr.ErrRoleMismatch, user.Role)
}
