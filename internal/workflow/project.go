package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/auth"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
)

// ProjectInput carries the project form fields.
type ProjectInput struct {
	Name     string `form:"project_name" json:"project_name"`
	Deadline string `form:"deadline" json:"deadline"`
	EditorID string `form:"editor" json:"editor"`
}

type validProject struct {
	name     string
	deadline time.Time
	editor   *models.User
}

// validateProject checks a project write in order: required name, future
// deadline, unused name, editor is a chief editor. current is the project
// being edited, nil on create; its own name never counts as taken.
func (e *Engine) validateProject(ctx context.Context, in ProjectInput, current *models.Activity) (*validProject, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", apperr.ErrValidation)
	}

	deadline, err := e.futureDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	if current == nil || name != current.ProjectName {
		_, err := e.activities.FindOne(ctx, repository.Filter{
			"activity_name": models.InitialActivity,
			"project_name":  name,
		})
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %q", apperr.ErrDuplicateName, name)
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, err
		}
	}

	editor, err := e.userWithRole(ctx, strings.TrimSpace(in.EditorID), models.RoleChiefEditor)
	if err != nil {
		return nil, err
	}
	return &validProject{name: name, deadline: deadline, editor: editor}, nil
}

// CreateProject inserts a new project in status created and returns its id.
func (e *Engine) CreateProject(ctx context.Context, caller *models.User, in ProjectInput) (string, error) {
	if err := auth.Authorize(caller, auth.OpCreateProject); err != nil {
		return "", err
	}
	v, err := e.validateProject(ctx, in, nil)
	if err != nil {
		return "", err
	}

	project := &models.Activity{
		ActivityName:  models.InitialActivity,
		ProjectName:   v.name,
		Editor:        v.editor.ID,
		Deadline:      v.deadline,
		ProjectStatus: models.StatusCreated,
		Completeness:  0,
		// status is forced to finished on every project write; kept as stored
		// until someone decides what the second flag means.
		Status: models.RowFinished,
	}
	if err := e.activities.Create(ctx, project); err != nil {
		return "", err
	}

	e.log.Info("project created", "op", auth.OpCreateProject, "user", caller.ID, "project", project.ID, "name", v.name)
	return project.ID, nil
}

// EditProject updates name, deadline and editor of a project. The project's
// tasks follow a rename. project_status is left alone.
func (e *Engine) EditProject(ctx context.Context, caller *models.User, projectID string, in ProjectInput) (int64, error) {
	if err := auth.Authorize(caller, auth.OpEditProject); err != nil {
		return 0, err
	}
	return e.editProject(ctx, caller, auth.OpEditProject, projectID, in)
}

func (e *Engine) editProject(ctx context.Context, caller *models.User, op auth.Operation, projectID string, in ProjectInput) (int64, error) {
	current, err := e.project(ctx, projectID)
	if err != nil {
		return 0, err
	}
	v, err := e.validateProject(ctx, in, current)
	if err != nil {
		return 0, err
	}

	n, err := e.activities.UpdateProject(ctx, current, repository.Fields{
		"project_name": v.name,
		"deadline":     v.deadline,
		"editor":       v.editor.ID,
		"status":       models.RowFinished,
	})
	if err != nil {
		return 0, err
	}

	e.log.Info("project updated", "op", op, "user", caller.ID, "project", projectID, "modified", n)
	return n, nil
}

// ChangeChiefEditor replaces the editor of a project. It goes through the
// full edit path with the project's current name and deadline, so a project
// whose deadline has passed cannot be reassigned.
func (e *Engine) ChangeChiefEditor(ctx context.Context, caller *models.User, projectID, editorID string) (int64, error) {
	if err := auth.Authorize(caller, auth.OpChangeChiefEditor); err != nil {
		return 0, err
	}
	current, err := e.project(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return e.editProject(ctx, caller, auth.OpChangeChiefEditor, projectID, ProjectInput{
		Name:     current.ProjectName,
		Deadline: current.Deadline.UTC().Format(DateLayout),
		EditorID: editorID,
	})
}

// ChangeProjectStatus moves a project along its lifecycle. A chief editor may
// only move projects they edit.
func (e *Engine) ChangeProjectStatus(ctx context.Context, caller *models.User, projectID string, to models.ProjectStatus) (int64, error) {
	if err := auth.Authorize(caller, auth.OpChangeProjectStatus); err != nil {
		return 0, err
	}
	current, err := e.project(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if caller.Role == models.RoleChiefEditor && current.Editor != caller.ID {
		return 0, fmt.Errorf("%w: project %s is edited by someone else", apperr.ErrRoleMismatch, projectID)
	}
	if err := CanTransition(caller.Role, current.ProjectStatus, to); err != nil {
		return 0, err
	}

	n, err := e.activities.Update(ctx, current.ID, repository.Fields{
		"project_status": to,
		"status":         models.RowFinished,
	})
	if err != nil {
		return 0, err
	}

	e.log.Info("project status changed", "op", auth.OpChangeProjectStatus, "user", caller.ID,
		"project", projectID, "from", current.ProjectStatus, "to", to)
	return n, nil
}
