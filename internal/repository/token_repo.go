package repository

import (
	"context"
	"fmt"

	"translation-tracker/internal/models"

	"gorm.io/gorm"
)

type TokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Create(ctx context.Context, t *models.Token) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

// FindByID returns apperr.ErrNotFound for unknown ids.
func (r *TokenRepo) FindByID(ctx context.Context, id string) (*models.Token, error) {
	var t models.Token
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &t, nil
}

func (r *TokenRepo) Find(ctx context.Context, f Filter) ([]models.Token, error) {
	q := r.db.WithContext(ctx).Order("issued_at asc")
	if len(f) > 0 {
		q = q.Where(map[string]any(f))
	}
	var tokens []models.Token
	if err := q.Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("find tokens: %w", err)
	}
	return tokens, nil
}

func (r *TokenRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Token{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete token: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteAll removes every token, which ends every session.
func (r *TokenRepo) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Token{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
