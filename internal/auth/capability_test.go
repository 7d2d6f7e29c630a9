package auth

import (
	"testing"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	pm := &models.User{ID: "pm", Role: models.RoleProjectManager}
	editor := &models.User{ID: "ed", Role: models.RoleChiefEditor}
	translator := &models.User{ID: "tr", Role: models.RoleTranslator}

	tests := []struct {
		wantErr error
		user    *models.User
		name    string
		op      Operation
	}{
		{name: "manager creates project", user: pm, op: OpCreateProject},
		{name: "editor cannot create project", user: editor, op: OpCreateProject, wantErr: apperr.ErrRoleMismatch},
		{name: "editor creates activity", user: editor, op: OpCreateActivity},
		{name: "translator cannot set translator", user: translator, op: OpSetTranslator, wantErr: apperr.ErrRoleMismatch},
		{name: "translator sets estimated time", user: translator, op: OpSetEstimatedTime},
		{name: "manager cannot set estimated time", user: pm, op: OpSetEstimatedTime, wantErr: apperr.ErrRoleMismatch},
		{name: "anyone sets status", user: translator, op: OpSetUserStatus},
		{name: "anonymous", user: nil, op: OpSetUserStatus, wantErr: apperr.ErrAuthenticationFailed},
		{name: "unknown operation", user: pm, op: Operation("launch_rockets"), wantErr: apperr.ErrRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.user, tt.op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRoles_ReturnsCopy(t *testing.T) {
	roles := Roles(OpCreateActivity)
	roles[0] = models.RoleTranslator
	assert.Equal(t, models.RoleProjectManager, Roles(OpCreateActivity)[0])
}
