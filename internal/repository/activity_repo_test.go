package repository

import (
	"context"
	"testing"
	"time"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/database/dbtest"
	"translation-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deadline = time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

func project(name string) *models.Activity {
	return &models.Activity{
		ActivityName:  models.InitialActivity,
		ProjectName:   name,
		Editor:        "editor-1",
		Deadline:      deadline,
		ProjectStatus: models.StatusCreated,
		Status:        models.RowFinished,
	}
}

func task(projectName, name string) *models.Activity {
	tr := "translator-1"
	return &models.Activity{
		ActivityName:  name,
		ProjectName:   projectName,
		Translator:    &tr,
		Editor:        "editor-1",
		Deadline:      deadline,
		ProjectStatus: models.StatusInWork,
		Status:        models.RowCreated,
	}
}

func TestActivityRepo_ProjectNameUnique(t *testing.T) {
	ctx := context.Background()
	r := NewActivityRepo(dbtest.New(t))

	require.NoError(t, r.Create(ctx, project("Alpha")))
	err := r.Create(ctx, project("Alpha"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	// tasks are not constrained by the project index
	require.NoError(t, r.Create(ctx, task("Alpha", "Review")))
	require.NoError(t, r.Create(ctx, task("Alpha", "Review")))
}

func TestActivityRepo_Queries(t *testing.T) {
	ctx := context.Background()
	r := NewActivityRepo(dbtest.New(t))

	alpha := project("Alpha")
	require.NoError(t, r.Create(ctx, alpha))
	beta := project("Beta")
	beta.ProjectStatus = models.StatusFinished
	require.NoError(t, r.Create(ctx, beta))
	require.NoError(t, r.Create(ctx, task("Alpha", "Translate")))
	require.NoError(t, r.Create(ctx, task("Alpha", "Proofread")))

	created, err := r.FindProjects(ctx, models.StatusCreated)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Alpha", created[0].ProjectName)

	all, err := r.FindProjects(ctx, models.StatusCreated, models.StatusFinished)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = r.FindProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rows, err := r.FindByProject(ctx, "Alpha")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "project rows include the initial row")

	names, err := r.ProjectNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, names)

	p, err := r.FindProject(ctx, alpha.ID)
	require.NoError(t, err)
	assert.True(t, p.IsProject())
	require.NotNil(t, p.ProjectKey)
	assert.Equal(t, "Alpha", *p.ProjectKey)

	tasks, err := r.Find(ctx, Filter{"translators": "translator-1"})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	_, err = r.FindProject(ctx, tasks[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "a task id is not a project id")
}

func TestActivityRepo_UpdateProject_RenameCascades(t *testing.T) {
	ctx := context.Background()
	r := NewActivityRepo(dbtest.New(t))

	alpha := project("Alpha")
	require.NoError(t, r.Create(ctx, alpha))
	require.NoError(t, r.Create(ctx, task("Alpha", "Translate")))

	fields := Fields{"project_name": "Gamma", "editor": "editor-2"}
	n, err := r.UpdateProject(ctx, alpha, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, Fields{"project_name": "Gamma", "editor": "editor-2"}, fields, "caller's map is left alone")

	rows, err := r.FindByProject(ctx, "Gamma")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	old, err := r.FindByProject(ctx, "Alpha")
	require.NoError(t, err)
	assert.Empty(t, old)

	p, err := r.FindByID(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor-2", p.Editor)
	require.NotNil(t, p.ProjectKey)
	assert.Equal(t, "Gamma", *p.ProjectKey)
}

func TestActivityRepo_UpdateProject_RenameToTakenName(t *testing.T) {
	ctx := context.Background()
	r := NewActivityRepo(dbtest.New(t))

	alpha := project("Alpha")
	require.NoError(t, r.Create(ctx, alpha))
	require.NoError(t, r.Create(ctx, project("Beta")))
	require.NoError(t, r.Create(ctx, task("Alpha", "Translate")))

	_, err := r.UpdateProject(ctx, alpha, Fields{"project_name": "Beta"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	rows, err := r.FindByProject(ctx, "Alpha")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "failed rename leaves the project untouched")
}

func TestActivityRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewActivityRepo(dbtest.New(t))

	a := task("Alpha", "Translate")
	require.NoError(t, r.Create(ctx, a))

	minutes := 90
	n, err := r.Update(ctx, a.ID, Fields{"estimated_time": minutes, "translators": nil})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EstimatedTime)
	assert.Equal(t, 90, *got.EstimatedTime)
	assert.Nil(t, got.Translator)
	assert.Equal(t, "", got.TranslatorID())

	n, err = r.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
