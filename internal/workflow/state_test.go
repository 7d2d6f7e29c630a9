package workflow

import (
	"testing"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	pm, ce, tr := models.RoleProjectManager, models.RoleChiefEditor, models.RoleTranslator
	created, inWork, finished := models.StatusCreated, models.StatusInWork, models.StatusFinished

	tests := []struct {
		wantErr  error
		role     models.UserRole
		from, to models.ProjectStatus
	}{
		{role: pm, from: created, to: inWork},
		{role: pm, from: inWork, to: finished},
		{role: pm, from: created, to: finished},
		{role: pm, from: finished, to: inWork},
		{role: ce, from: created, to: inWork},
		{role: ce, from: inWork, to: finished},
		{role: ce, from: created, to: finished, wantErr: apperr.ErrRoleMismatch},
		{role: ce, from: finished, to: inWork, wantErr: apperr.ErrRoleMismatch},
		{role: tr, from: created, to: inWork, wantErr: apperr.ErrRoleMismatch},
		{role: pm, from: created, to: created, wantErr: apperr.ErrValidation},
		{role: pm, from: finished, to: created, wantErr: apperr.ErrValidation},
		{role: pm, from: "on hold", to: inWork, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+string(tt.from)+" -> "+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.role, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t,
		[]models.ProjectStatus{models.StatusInWork, models.StatusFinished},
		NextStatuses(models.RoleProjectManager, models.StatusCreated))
	assert.Equal(t,
		[]models.ProjectStatus{models.StatusInWork},
		NextStatuses(models.RoleChiefEditor, models.StatusCreated))
	assert.Empty(t, NextStatuses(models.RoleChiefEditor, models.StatusFinished))
}
