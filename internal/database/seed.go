package database

import (
	"context"
	"fmt"
	"log/slog"

	"translation-tracker/internal/auth"
	"translation-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedManager creates a project manager account with the given login when no
// project manager exists yet. It reports whether an account was created.
func SeedManager(ctx context.Context, db *gorm.DB, login, password string, log *slog.Logger) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleProjectManager).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check project managers: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.EncodePassword(password)
	if err != nil {
		return false, fmt.Errorf("hash default manager password: %w", err)
	}

	manager := models.User{
		ID:           uuid.NewString(),
		Login:        login,
		Username:     login,
		PasswordHash: hash,
		Role:         models.RoleProjectManager,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&manager).Error; err != nil {
		return false, fmt.Errorf("create default manager: %w", err)
	}

	log.Info("created default project manager", "login", login)
	return true, nil
}
