package repository

import (
	"context"
	"fmt"
	"maps"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"gorm.io/gorm"
)

type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Create inserts a project or task row. For project rows the project_key
// unique index turns a concurrent duplicate into apperr.ErrDuplicateName.
func (r *ActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.IsProject() {
		key := a.ProjectName
		a.ProjectKey = &key
	} else {
		a.ProjectKey = nil
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create activity: %w", translate(err, apperr.ErrDuplicateName))
	}
	return nil
}

func (r *ActivityRepo) FindOne(ctx context.Context, f Filter) (*models.Activity, error) {
	var a models.Activity
	if err := r.db.WithContext(ctx).Where(map[string]any(f)).First(&a).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &a, nil
}

func (r *ActivityRepo) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	return r.FindOne(ctx, Filter{"id": id})
}

// FindProject returns the project row with the given id.
func (r *ActivityRepo) FindProject(ctx context.Context, id string) (*models.Activity, error) {
	return r.FindOne(ctx, Filter{"id": id, "activity_name": models.InitialActivity})
}

// Find returns the rows matching f in insertion order.
func (r *ActivityRepo) Find(ctx context.Context, f Filter) ([]models.Activity, error) {
	q := r.db.WithContext(ctx).Order("created_at asc").Order("id asc")
	if len(f) > 0 {
		q = q.Where(map[string]any(f))
	}
	var activities []models.Activity
	if err := q.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	return activities, nil
}

// FindProjects returns project rows in any of the given workflow statuses.
// With no statuses every project is returned.
func (r *ActivityRepo) FindProjects(ctx context.Context, statuses ...models.ProjectStatus) ([]models.Activity, error) {
	f := Filter{"activity_name": models.InitialActivity}
	if len(statuses) > 0 {
		in := make([]string, len(statuses))
		for i, s := range statuses {
			in[i] = string(s)
		}
		f["project_status"] = in
	}
	return r.Find(ctx, f)
}

// FindByProject returns every row of the project, including its own initial row.
func (r *ActivityRepo) FindByProject(ctx context.Context, projectName string) ([]models.Activity, error) {
	return r.Find(ctx, Filter{"project_name": projectName})
}

// Distinct returns the distinct values of column among rows matching f.
func (r *ActivityRepo) Distinct(ctx context.Context, column string, f Filter) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&models.Activity{}).Distinct().Order(column)
	if len(f) > 0 {
		q = q.Where(map[string]any(f))
	}
	var values []string
	if err := q.Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

// ProjectNames returns the names of all projects.
func (r *ActivityRepo) ProjectNames(ctx context.Context) ([]string, error) {
	return r.Distinct(ctx, "project_name", Filter{"activity_name": models.InitialActivity})
}

func (r *ActivityRepo) Update(ctx context.Context, id string, fields Fields) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", id).Updates(map[string]any(fields))
	if res.Error != nil {
		return 0, fmt.Errorf("update activity: %w", translate(res.Error, apperr.ErrDuplicateName))
	}
	return res.RowsAffected, nil
}

// UpdateProject updates the project row and, when project_name changes,
// renames the project's tasks in the same transaction.
func (r *ActivityRepo) UpdateProject(ctx context.Context, project *models.Activity, fields Fields) (int64, error) {
	var modified int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		name, renamed := fields["project_name"].(string)
		renamed = renamed && name != project.ProjectName
		updates := make(map[string]any, len(fields)+1)
		maps.Copy(updates, fields)
		if renamed {
			updates["project_key"] = name
		}

		res := tx.Model(&models.Activity{}).
			Where("id = ? AND activity_name = ?", project.ID, models.InitialActivity).
			Updates(updates)
		if res.Error != nil {
			return translate(res.Error, apperr.ErrDuplicateName)
		}
		modified = res.RowsAffected

		if renamed {
			err := tx.Model(&models.Activity{}).
				Where("project_name = ? AND activity_name <> ?", project.ProjectName, models.InitialActivity).
				Update("project_name", name).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("update project: %w", err)
	}
	return modified, nil
}

func (r *ActivityRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Activity{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete activity: %w", res.Error)
	}
	return res.RowsAffected, nil
}
