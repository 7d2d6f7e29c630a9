package workflow

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"translation-tracker/internal/database/dbtest"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	engine     *Engine
	users      *repository.UserRepo
	activities *repository.ActivityRepo

	manager     *models.User
	editor      *models.User
	editor2     *models.User
	translator  *models.User
	translator2 *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		users:      repository.NewUserRepo(db),
		activities: repository.NewActivityRepo(db),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.engine = New(f.users, f.activities, log).WithClock(func() time.Time { return testNow })

	f.manager = f.addUser(t, "pm", models.RoleProjectManager)
	f.editor = f.addUser(t, "e1", models.RoleChiefEditor)
	f.editor2 = f.addUser(t, "e2", models.RoleChiefEditor)
	f.translator = f.addUser(t, "t1", models.RoleTranslator)
	f.translator2 = f.addUser(t, "t2", models.RoleTranslator)
	return f
}

func (f *fixture) addUser(t *testing.T, login string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Login: login, Username: login, PasswordHash: "x$y", Role: role, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// addProject creates a project named name edited by f.editor.
func (f *fixture) addProject(t *testing.T, name string) string {
	t.Helper()
	id, err := f.engine.CreateProject(context.Background(), f.manager, ProjectInput{
		Name:     name,
		Deadline: "2099-01-01",
		EditorID: f.editor.ID,
	})
	require.NoError(t, err)
	return id
}

// addTask creates a task under project assigned to f.translator.
func (f *fixture) addTask(t *testing.T, project, name string) string {
	t.Helper()
	id, err := f.engine.CreateActivity(context.Background(), f.editor, ActivityInput{
		ProjectName:  project,
		ActivityName: name,
		Deadline:     "2099-01-01",
		TranslatorID: f.translator.ID,
	})
	require.NoError(t, err)
	return id
}
