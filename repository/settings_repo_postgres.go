package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"lrbooking/models"
)

type PostgresSettingsRepo struct {
	DB *sql.DB
}

func NewPostgresSettingsRepo(db *sql.DB) *PostgresSettingsRepo {
	return &PostgresSettingsRepo{DB: db}
}

// SaveSettings upserts the single settings row.
func (r *PostgresSettingsRepo) SaveSettings(ctx context.Context, s *models.CompanySettings) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO company_settings(id, doc, updated_at)
		VALUES(1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`, doc, s.UpdatedAt)
	return err
}

func (r *PostgresSettingsRepo) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx, `SELECT doc FROM company_settings WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := &models.CompanySettings{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}
