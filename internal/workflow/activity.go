package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/auth"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
)

// ActivityInput carries the task form fields. EditorID defaults to the
// project's chief editor; TranslatorID may be empty.
type ActivityInput struct {
	ProjectName  string `form:"project_name" json:"project_name"`
	ActivityName string `form:"activity_name" json:"activity_name"`
	Deadline     string `form:"deadline" json:"deadline"`
	TranslatorID string `form:"translator" json:"translator"`
	EditorID     string `form:"current_chief_editor" json:"editor"`
}

// ActivityEdit carries the fields editActivity may change.
type ActivityEdit struct {
	ActivityName string `form:"activity_name" json:"activity_name"`
	Deadline     string `form:"deadline" json:"deadline"`
	TranslatorID string `form:"translator" json:"translator"`
}

func activityName(s string) (string, error) {
	name := strings.TrimSpace(s)
	switch name {
	case "":
		return "", fmt.Errorf("%w: activity name is required", apperr.ErrValidation)
	case models.InitialActivity:
		return "", fmt.Errorf("%w: %q is reserved", apperr.ErrValidation, name)
	}
	return name, nil
}

// optionalTranslator resolves an optional translator id; "" yields nil.
func (e *Engine) optionalTranslator(ctx context.Context, id string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	u, err := e.userWithRole(ctx, id, models.RoleTranslator)
	if err != nil {
		return nil, err
	}
	return &u.ID, nil
}

// CreateActivity adds a task to an existing project and returns its id.
func (e *Engine) CreateActivity(ctx context.Context, caller *models.User, in ActivityInput) (string, error) {
	if err := auth.Authorize(caller, auth.OpCreateActivity); err != nil {
		return "", err
	}

	name, err := activityName(in.ActivityName)
	if err != nil {
		return "", err
	}
	deadline, err := e.futureDeadline(in.Deadline)
	if err != nil {
		return "", err
	}

	projectName := strings.TrimSpace(in.ProjectName)
	project, err := e.activities.FindOne(ctx, repository.Filter{
		"activity_name": models.InitialActivity,
		"project_name":  projectName,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("project %q: %w", projectName, apperr.ErrNotFound)
		}
		return "", err
	}

	translator, err := e.optionalTranslator(ctx, in.TranslatorID)
	if err != nil {
		return "", err
	}

	editorID := strings.TrimSpace(in.EditorID)
	if editorID == "" {
		editorID = project.Editor
	}
	if _, err := e.userWithRole(ctx, editorID, models.RoleChiefEditor); err != nil {
		return "", err
	}

	task := &models.Activity{
		ActivityName:  name,
		ProjectName:   project.ProjectName,
		Translator:    translator,
		Editor:        editorID,
		Deadline:      deadline,
		ProjectStatus: models.StatusInWork,
		Completeness:  0,
		Status:        models.RowCreated,
	}
	if err := e.activities.Create(ctx, task); err != nil {
		return "", err
	}

	e.log.Info("activity created", "op", auth.OpCreateActivity, "user", caller.ID,
		"activity", task.ID, "project", project.ID)
	return task.ID, nil
}

// EditActivity updates name, deadline and translator of a task.
func (e *Engine) EditActivity(ctx context.Context, caller *models.User, activityID string, in ActivityEdit) (int64, error) {
	if err := auth.Authorize(caller, auth.OpEditActivity); err != nil {
		return 0, err
	}
	current, err := e.task(ctx, activityID)
	if err != nil {
		return 0, err
	}

	name, err := activityName(in.ActivityName)
	if err != nil {
		return 0, err
	}
	deadline, err := e.futureDeadline(in.Deadline)
	if err != nil {
		return 0, err
	}
	translator, err := e.optionalTranslator(ctx, in.TranslatorID)
	if err != nil {
		return 0, err
	}

	n, err := e.activities.Update(ctx, current.ID, repository.Fields{
		"activity_name": name,
		"deadline":      deadline,
		"translators":   translator,
	})
	if err != nil {
		return 0, err
	}

	e.log.Info("activity updated", "op", auth.OpEditActivity, "user", caller.ID, "activity", activityID)
	return n, nil
}

// SetEstimatedTime records the caller's estimate in minutes for a task
// assigned to them.
func (e *Engine) SetEstimatedTime(ctx context.Context, caller *models.User, activityID string, minutes int) (int64, error) {
	if err := auth.Authorize(caller, auth.OpSetEstimatedTime); err != nil {
		return 0, err
	}
	if minutes < 0 {
		return 0, fmt.Errorf("%w: estimated time must not be negative", apperr.ErrValidation)
	}
	current, err := e.task(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if current.TranslatorID() != caller.ID {
		return 0, fmt.Errorf("%w: activity %s is not assigned to the caller", apperr.ErrRoleMismatch, activityID)
	}

	n, err := e.activities.Update(ctx, current.ID, repository.Fields{"estimated_time": minutes})
	if err != nil {
		return 0, err
	}
	e.log.Info("estimated time set", "op", auth.OpSetEstimatedTime, "user", caller.ID, "activity", activityID, "minutes", minutes)
	return n, nil
}

func (e *Engine) SetTranslator(ctx context.Context, caller *models.User, activityID, translatorID string) (int64, error) {
	if err := auth.Authorize(caller, auth.OpSetTranslator); err != nil {
		return 0, err
	}
	current, err := e.task(ctx, activityID)
	if err != nil {
		return 0, err
	}
	translator, err := e.userWithRole(ctx, strings.TrimSpace(translatorID), models.RoleTranslator)
	if err != nil {
		return 0, err
	}

	n, err := e.activities.Update(ctx, current.ID, repository.Fields{"translators": translator.ID})
	if err != nil {
		return 0, err
	}
	e.log.Info("translator assigned", "op", auth.OpSetTranslator, "user", caller.ID, "activity", activityID, "translator", translator.ID)
	return n, nil
}

func (e *Engine) SetEditor(ctx context.Context, caller *models.User, activityID, editorID string) (int64, error) {
	if err := auth.Authorize(caller, auth.OpSetEditor); err != nil {
		return 0, err
	}
	current, err := e.task(ctx, activityID)
	if err != nil {
		return 0, err
	}
	editor, err := e.userWithRole(ctx, strings.TrimSpace(editorID), models.RoleChiefEditor)
	if err != nil {
		return 0, err
	}

	n, err := e.activities.Update(ctx, current.ID, repository.Fields{"editor": editor.ID})
	if err != nil {
		return 0, err
	}
	e.log.Info("editor assigned", "op", auth.OpSetEditor, "user", caller.ID, "activity", activityID, "editor", editor.ID)
	return n, nil
}
