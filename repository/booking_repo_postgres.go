package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"lrbooking/models"
)

type PostgresBookingRepo struct {
	DB *sql.DB

	seedMu sync.Mutex
	seeded bool
}

func NewPostgresBookingRepo(db *sql.DB) *PostgresBookingRepo {
	return &PostgresBookingRepo{DB: db}
}

// ------------------------ Create / Update Booking ------------------------

func (r *PostgresBookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO bookings(id, booking_type, status, destination, doc, created_at)
		VALUES($1,$2,$3,$4,$5,$6)
	`, b.ID, b.BookingType, b.Status, b.Destination, doc, b.CreatedAt)
	return err
}

// UpdateBooking locks the row and merges the editable fields into the stored document.
func (r *PostgresBookingRepo) UpdateBooking(ctx context.Context, id string, patch EditPatch) (*models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM bookings WHERE id=$1 FOR UPDATE`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	patch.Apply(&b)

	doc, err := json.Marshal(&b)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET booking_type=$1, destination=$2, doc=$3, updated_at=$4
		WHERE id=$5
	`, b.BookingType, b.Destination, doc, patch.UpdatedAt, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyTransition locks the row, re-checks the status and rewrites the document.
func (r *PostgresBookingRepo) ApplyTransition(ctx context.Context, id string, from models.Status, patch TransitionPatch) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `
		SELECT doc FROM bookings WHERE id=$1 AND status=$2 FOR UPDATE
	`, id, from).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, err
	}
	patch.Apply(&b)

	doc, err := json.Marshal(&b)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status=$1, doc=$2, updated_at=$3 WHERE id=$4
	`, b.Status, doc, patch.UpdatedAt, id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *PostgresBookingRepo) UpdatePDFURL(ctx context.Context, id, url string, t time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET doc = jsonb_set(jsonb_set(doc, '{pdfUrl}', to_jsonb($1::text)), '{updatedAt}', to_jsonb($2::timestamptz)),
			updated_at = $2
		WHERE id = $3
	`, url, t, id)
	return err
}

// ------------------------ Get / List Booking ------------------------

func (r *PostgresBookingRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx, `SELECT doc FROM bookings WHERE id=$1`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBookingRepo) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	query := `SELECT doc FROM bookings`

	args := []interface{}{}
	where := []string{}
	add := func(column string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.BookingType != "" {
		add("booking_type", filter.BookingType)
	}
	if filter.Destination != "" {
		add("destination", filter.Destination)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Booking
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var b models.Booking
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

// ------------------------ Delete Booking ------------------------

func (r *PostgresBookingRepo) DeleteBooking(ctx context.Context, id string) (*models.Booking, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx, `DELETE FROM bookings WHERE id=$1 RETURNING doc`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ------------------------ Sequence ------------------------

// NextSequence bumps the counter with a single UPSERT ... RETURNING. The
// first call raises the counter to the highest PT<n> already stored.
func (r *PostgresBookingRepo) NextSequence(ctx context.Context) (int64, error) {
	if err := r.seedCounter(ctx); err != nil {
		return 0, fmt.Errorf("seed booking sequence: %w", err)
	}

	var n int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO booking_sequence(name, current_val)
		VALUES('bookings', $1)
		ON CONFLICT (name) DO UPDATE SET current_val = booking_sequence.current_val + 1
		RETURNING current_val
	`, models.FirstSequence).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next booking sequence: %w", err)
	}
	return n, nil
}

func (r *PostgresBookingRepo) seedCounter(ctx context.Context) error {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()
	if r.seeded {
		return nil
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM bookings`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// GREATEST never lowers a counter another instance already advanced.
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO booking_sequence(name, current_val)
		VALUES('bookings', $1)
		ON CONFLICT (name) DO UPDATE SET current_val = GREATEST(booking_sequence.current_val, EXCLUDED.current_val)
	`, maxSequence(ids)); err != nil {
		return err
	}
	r.seeded = true
	return nil
}
