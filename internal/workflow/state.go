package workflow

import (
	"fmt"
	"slices"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"
)

type transition struct {
	from, to models.ProjectStatus
}

// transitions lists the legal project status changes and who may apply them.
// A chief editor may only move a project they edit.
var transitions = map[transition][]models.UserRole{
	{models.StatusCreated, models.StatusInWork}:   {models.RoleProjectManager, models.RoleChiefEditor},
	{models.StatusInWork, models.StatusFinished}:  {models.RoleProjectManager, models.RoleChiefEditor},
	{models.StatusCreated, models.StatusFinished}: {models.RoleProjectManager},
	{models.StatusFinished, models.StatusInWork}:  {models.RoleProjectManager},
}

// CanTransition reports whether role may move a project from one status to
// another. Unknown transitions are validation errors, known transitions
// closed to the role are role mismatches.
func CanTransition(role models.UserRole, from, to models.ProjectStatus) error {
	roles, ok := transitions[transition{from, to}]
	if !ok {
		return fmt.Errorf("%w: project cannot move from %q to %q", apperr.ErrValidation, from, to)
	}
	if !slices.Contains(roles, role) {
		return fmt.Errorf("%w: %s cannot move a project from %q to %q", apperr.ErrRoleMismatch, role, from, to)
	}
	return nil
}

// NextStatuses returns the statuses role may move a project to from from.
func NextStatuses(role models.UserRole, from models.ProjectStatus) []models.ProjectStatus {
	var next []models.ProjectStatus
	for _, to := range []models.ProjectStatus{models.StatusCreated, models.StatusInWork, models.StatusFinished} {
		if CanTransition(role, from, to) == nil {
			next = append(next, to)
		}
	}
	return next
}
