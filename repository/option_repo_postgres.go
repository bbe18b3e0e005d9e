package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"lrbooking/models"
)

// PostgresOptionRepo implements OptionStore and PartyCache.
type PostgresOptionRepo struct {
	DB *sql.DB
}

func NewPostgresOptionRepo(db *sql.DB) *PostgresOptionRepo {
	return &PostgresOptionRepo{DB: db}
}

func (r *PostgresOptionRepo) List(ctx context.Context, key string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT value FROM option_values WHERE key=$1 ORDER BY created_at, value
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresOptionRepo) Add(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO option_values(key, value) VALUES($1,$2)
		ON CONFLICT (key, value) DO NOTHING
	`, key, value)
	return err
}

func (r *PostgresOptionRepo) Consignees(ctx context.Context, destination string) ([]models.Party, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT doc FROM consignee_cache WHERE destination=$1 ORDER BY created_at
	`, destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Party{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p models.Party
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresOptionRepo) AddConsignee(ctx context.Context, destination string, p models.Party) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO consignee_cache(destination, party_key, doc) VALUES($1,$2,$3)
		ON CONFLICT (destination, party_key) DO NOTHING
	`, destination, p.Key(), doc)
	return err
}

func (r *PostgresOptionRepo) Address(ctx context.Context, destination string) (string, error) {
	var addr string
	err := r.DB.QueryRowContext(ctx, `SELECT address FROM address_cache WHERE destination=$1`, destination).Scan(&addr)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return addr, err
}

func (r *PostgresOptionRepo) AddAddress(ctx context.Context, destination, address string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO address_cache(destination, address) VALUES($1,$2)
		ON CONFLICT (destination) DO NOTHING
	`, destination, address)
	return err
}
