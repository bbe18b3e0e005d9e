package repository

import (
	"context"

	"lrbooking/models"
)

// SettingsRepository stores the single company branding record.
type SettingsRepository interface {
	SaveSettings(ctx context.Context, s *models.CompanySettings) error
	GetSettings(ctx context.Context) (*models.CompanySettings, error)
}
