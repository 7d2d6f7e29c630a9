// Package workflow implements the project and activity lifecycle: validation
// of project and task writes, status transitions and the assignment
// operations. Every mutation is gated through auth.Authorize before any
// store access.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, fields repository.Fields) (int64, error)
}

type ActivityStore interface {
	Create(ctx context.Context, a *models.Activity) error
	FindOne(ctx context.Context, f repository.Filter) (*models.Activity, error)
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	FindProject(ctx context.Context, id string) (*models.Activity, error)
	Update(ctx context.Context, id string, fields repository.Fields) (int64, error)
	UpdateProject(ctx context.Context, project *models.Activity, fields repository.Fields) (int64, error)
}

type Engine struct {
	users      UserStore
	activities ActivityStore
	log        *slog.Logger
	now        func() time.Time
}

func New(users UserStore, activities ActivityStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		users:      users,
		activities: activities,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for deadline checks.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// userWithRole loads the user id and checks it has the wanted role.
func (e *Engine) userWithRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %s id is required", apperr.ErrValidation, role)
	}
	u, err := e.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", role, id, apperr.ErrNotFound)
		}
		return nil, err
	}
	if u.Role != role {
		return nil, fmt.Errorf("%w: user %s is %s, not %s", apperr.ErrValidation, id, u.Role, role)
	}
	return u, nil
}

// project loads the project row with the given id.
func (e *Engine) project(ctx context.Context, id string) (*models.Activity, error) {
	p, err := e.activities.FindProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	return p, nil
}

// task loads the activity with the given id and rejects project rows.
func (e *Engine) task(ctx context.Context, id string) (*models.Activity, error) {
	a, err := e.activities.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", id, err)
	}
	if a.IsProject() {
		return nil, fmt.Errorf("%w: %s is a project, not an activity", apperr.ErrValidation, id)
	}
	return a, nil
}
