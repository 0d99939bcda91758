package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// BookingRepo persists reservation requests.  Dates are stored and returned
// as the raw strings written by the booking flow.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a BookingRepo bound to db.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, villa_id, start_date, end_date, total_price, status,
	guest_name, guest_email, guest_whatsapp, special_request, created_at`

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var (
			b  model.Booking
			sr sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.VillaID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status,
			&b.GuestName, &b.GuestEmail, &b.GuestWhatsApp, &sr, &b.CreatedAt); err != nil {
			return nil, err
		}
		if sr.Valid {
			s := sr.String
			b.SpecialRequest = &s
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func listActiveByVilla(ctx context.Context, q queryer, villaID string) ([]model.Booking, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE villa_id = ? AND status IN ('pending','confirmed')
		ORDER BY start_date ASC`, villaID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// ListActiveByVilla returns the pending and confirmed bookings of a villa,
// the only ones that block dates.
func (r *BookingRepo) ListActiveByVilla(ctx context.Context, villaID string) ([]model.Booking, error) {
	return listActiveByVilla(ctx, r.db, villaID)
}

// ListAll returns every booking, newest first.  A non-empty status narrows
// the result.
func (r *BookingRepo) ListAll(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// CheckFunc inspects the villa's locked active bookings and returns an error
// to abort the insert.
type CheckFunc func(existing []model.Booking) error

// CreateChecked inserts b after running check against the villa's active
// bookings.  The villa row is locked with SELECT ... FOR UPDATE for the
// duration of the transaction so two requests for the same villa cannot
// both pass check.  It fills in b.ID and b.CreatedAt.
func (r *BookingRepo) CreateChecked(ctx context.Context, b *model.Booking, check CheckFunc) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM villas WHERE id = ? FOR UPDATE`, b.VillaID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	existing, err := listActiveByVilla(ctx, tx, b.VillaID)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(existing); err != nil {
			return err
		}
	}
	if err := r.InsertTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// InsertTx writes b inside tx with a fresh UUID.
func (r *BookingRepo) InsertTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	var sr sql.NullString
	if b.SpecialRequest != nil {
		sr = sql.NullString{String: *b.SpecialRequest, Valid: true}
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO bookings
		(id, villa_id, start_date, end_date, total_price, status, guest_name, guest_email, guest_whatsapp, special_request, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.VillaID, b.StartDate, b.EndDate, b.TotalPrice, string(b.Status),
		b.GuestName, b.GuestEmail, b.GuestWhatsApp, sr, b.CreatedAt)
	return err
}
