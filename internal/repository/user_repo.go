package repository

import (
	"context"
	"fmt"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts u, assigning an id when empty.
// Returns apperr.ErrDuplicateLogin if the login is taken.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err, apperr.ErrDuplicateLogin))
	}
	return nil
}

// FindOne returns the first user matching f or apperr.ErrNotFound.
func (r *UserRepo) FindOne(ctx context.Context, f Filter) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where(map[string]any(f)).First(&u).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.FindOne(ctx, Filter{"id": id})
}

func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.FindOne(ctx, Filter{"login": login})
}

// Find returns all users matching f ordered by username. A nil filter matches everything.
func (r *UserRepo) Find(ctx context.Context, f Filter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("username asc")
	if len(f) > 0 {
		q = q.Where(map[string]any(f))
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) FindByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return r.Find(ctx, Filter{"role": role})
}

// Update sets fields on the user with the given id and reports the number of rows touched.
func (r *UserRepo) Update(ctx context.Context, id string, fields Fields) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any(fields))
	if res.Error != nil {
		return 0, fmt.Errorf("update user: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete user: %w", res.Error)
	}
	return res.RowsAffected, nil
}
