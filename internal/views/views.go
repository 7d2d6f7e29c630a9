// Package views assembles the read-only payload behind each role's screen.
// Nothing here writes to the store.
package views

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"
	"translation-tracker/internal/repository"
)

type UserReader interface {
	Find(ctx context.Context, f repository.Filter) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ActivityReader interface {
	Find(ctx context.Context, f repository.Filter) ([]models.Activity, error)
	FindProject(ctx context.Context, id string) (*models.Activity, error)
	FindProjects(ctx context.Context, statuses ...models.ProjectStatus) ([]models.Activity, error)
	FindByProject(ctx context.Context, projectName string) ([]models.Activity, error)
}

type Service struct {
	users      UserReader
	activities ActivityReader
}

func New(users UserReader, activities ActivityReader) *Service {
	return &Service{users: users, activities: activities}
}

// ActivityRow is an activity with its user ids resolved to display names.
type ActivityRow struct {
	models.Activity
	EditorName     string `json:"editor_name"`
	TranslatorName string `json:"translator_name,omitempty"`
}

// Sidebar is the navigation shared by every manager page.
type Sidebar struct {
	ChiefEditors []models.User `json:"chief_editors"`
	Translators  []models.User `json:"translators"`
	AllProjects  []ActivityRow `json:"all_projects"`
}

type ProjectsPage struct {
	Sidebar
	Projects    []ActivityRow `json:"projects"`
	CurrentPage int           `json:"current_page"`
	NumPages    int           `json:"num_of_pages"`
	Pages       []int         `json:"-"`
	Archive     bool          `json:"archive"`
}

type ProjectDetail struct {
	Sidebar
	Project            ActivityRow      `json:"project"`
	Activities         []ActivityRow    `json:"project_activities"`
	ProjectTranslators []models.UserRef `json:"project_translators"`
}

// UserPage is a user's own projects and tasks.
type UserPage struct {
	User       models.User   `json:"user"`
	Projects   []ActivityRow `json:"projects,omitempty"`
	Activities []ActivityRow `json:"activities"`
}

// ManagerUserPage is UserPage as a project manager sees it.
type ManagerUserPage struct {
	Sidebar
	UserPage
}

// listStatuses maps the archive switch to the project statuses listed.
func listStatuses(archive bool) []models.ProjectStatus {
	if archive {
		return []models.ProjectStatus{models.StatusFinished}
	}
	return []models.ProjectStatus{models.StatusCreated, models.StatusInWork}
}

// directory indexes every user by id for name resolution.
type directory map[string]models.User

func (s *Service) directory(ctx context.Context) (directory, error) {
	users, err := s.users.Find(ctx, nil)
	if err != nil {
		return nil, err
	}
	dir := make(directory, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir, nil
}

// name returns the username for id, or id itself when the user is gone.
func (d directory) name(id string) string {
	if u, ok := d[id]; ok {
		return u.Username
	}
	return id
}

func (d directory) withRole(role models.UserRole) []models.User {
	var users []models.User
	for _, u := range d {
		if u.Role == role {
			users = append(users, u)
		}
	}
	slices.SortFunc(users, func(a, b models.User) int {
		return cmp.Or(cmp.Compare(a.Username, b.Username), cmp.Compare(a.ID, b.ID))
	})
	return users
}

func (d directory) row(a models.Activity) ActivityRow {
	r := ActivityRow{Activity: a, EditorName: d.name(a.Editor)}
	if id := a.TranslatorID(); id != "" {
		r.TranslatorName = d.name(id)
	}
	return r
}

func (d directory) rows(activities []models.Activity) []ActivityRow {
	rows := make([]ActivityRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, d.row(a))
	}
	return rows
}

// byDeadline sorts rows by ascending deadline, keeping store order on ties.
func byDeadline(rows []ActivityRow) {
	slices.SortStableFunc(rows, func(a, b ActivityRow) int {
		return a.Deadline.Compare(b.Deadline)
	})
}

func (s *Service) sidebar(ctx context.Context, dir directory, archive bool) (Sidebar, error) {
	projects, err := s.activities.FindProjects(ctx, listStatuses(archive)...)
	if err != nil {
		return Sidebar{}, err
	}
	all := dir.rows(projects)
	byDeadline(all)
	return Sidebar{
		ChiefEditors: dir.withRole(models.RoleChiefEditor),
		Translators:  dir.withRole(models.RoleTranslator),
		AllProjects:  all,
	}, nil
}

// ManagerProjects lists active or archived projects sorted by deadline, one
// page at a time.
func (s *Service) ManagerProjects(ctx context.Context, archive bool, page int) (*ProjectsPage, error) {
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	side, err := s.sidebar(ctx, dir, archive)
	if err != nil {
		return nil, err
	}
	n := len(side.AllProjects)
	return &ProjectsPage{
		Sidebar:     side,
		Projects:    Page(side.AllProjects, page),
		CurrentPage: page,
		NumPages:    NumPages(n),
		Pages:       PageNumbers(n),
		Archive:     archive,
	}, nil
}

// ManagerProject returns a project with its tasks and the translators working on it.
func (s *Service) ManagerProject(ctx context.Context, projectID string) (*ProjectDetail, error) {
	project, err := s.activities.FindProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	side, err := s.sidebar(ctx, dir, project.ProjectStatus == models.StatusFinished)
	if err != nil {
		return nil, err
	}

	rows, err := s.activities.FindByProject(ctx, project.ProjectName)
	if err != nil {
		return nil, err
	}
	tasks := slices.DeleteFunc(rows, func(a models.Activity) bool { return a.IsProject() })

	var translators []models.UserRef
	seen := map[string]bool{}
	for _, t := range tasks {
		id := t.TranslatorID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		translators = append(translators, models.UserRef{ID: id, Username: dir.name(id)})
	}

	return &ProjectDetail{
		Sidebar:            side,
		Project:            dir.row(*project),
		Activities:         dir.rows(tasks),
		ProjectTranslators: translators,
	}, nil
}

// userPage splits the activities matching f into project rows and tasks.
func (s *Service) userPage(ctx context.Context, dir directory, user models.User, f repository.Filter) (*UserPage, error) {
	rows, err := s.activities.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &UserPage{User: user, Activities: []ActivityRow{}}
	for _, a := range rows {
		if a.IsProject() {
			page.Projects = append(page.Projects, dir.row(a))
		} else {
			page.Activities = append(page.Activities, dir.row(a))
		}
	}
	byDeadline(page.Projects)
	byDeadline(page.Activities)
	return page, nil
}

func (s *Service) roleUser(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	if u.Role != role {
		return nil, fmt.Errorf("%s %s: %w", role, id, apperr.ErrNotFound)
	}
	return u, nil
}

// TranslatorHome returns the translator's own tasks.
func (s *Service) TranslatorHome(ctx context.Context, userID string) (*UserPage, error) {
	u, err := s.roleUser(ctx, userID, models.RoleTranslator)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	return s.userPage(ctx, dir, *u, repository.Filter{"translators": u.ID})
}

// ChiefEditorHome returns the projects and tasks the chief editor edits.
func (s *Service) ChiefEditorHome(ctx context.Context, userID string) (*UserPage, error) {
	u, err := s.roleUser(ctx, userID, models.RoleChiefEditor)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	return s.userPage(ctx, dir, *u, repository.Filter{"editor": u.ID})
}

// ManagerTranslator is TranslatorHome with the manager's navigation.
func (s *Service) ManagerTranslator(ctx context.Context, userID string) (*ManagerUserPage, error) {
	return s.managerUser(ctx, userID, s.TranslatorHome)
}

// ManagerChiefEditor is ChiefEditorHome with the manager's navigation.
func (s *Service) ManagerChiefEditor(ctx context.Context, userID string) (*ManagerUserPage, error) {
	return s.managerUser(ctx, userID, s.ChiefEditorHome)
}

func (s *Service) managerUser(ctx context.Context, userID string, home func(context.Context, string) (*UserPage, error)) (*ManagerUserPage, error) {
	page, err := home(ctx, userID)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	side, err := s.sidebar(ctx, dir, false)
	if err != nil {
		return nil, err
	}
	return &ManagerUserPage{Sidebar: side, UserPage: *page}, nil
}
