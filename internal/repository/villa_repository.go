package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/bali-villa-booking/internal/catalog"
	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// VillaRepo reads the villa catalog.
type VillaRepo struct{ db *sql.DB }

// NewVillaRepo returns a VillaRepo bound to db.
func NewVillaRepo(db *sql.DB) *VillaRepo { return &VillaRepo{db: db} }

const villaColumns = `id, name, description, price_per_night, bedrooms, guests, image_url,
	images, features, land_area, building_area, levels, bathrooms, pantry, pool_area,
	latitude, longitude, amenities_detail, house_rules, proximity_list,
	sleeping_arrangements, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVilla(s rowScanner) (model.Villa, error) {
	var r catalog.VillaRow
	err := s.Scan(
		&r.ID, &r.Name, &r.Description, &r.PricePerNight, &r.Bedrooms, &r.Guests, &r.ImageURL,
		&r.Images, &r.Features, &r.LandArea, &r.BuildingArea, &r.Levels, &r.Bathrooms, &r.Pantry, &r.PoolArea,
		&r.Latitude, &r.Longitude, &r.AmenitiesDetail, &r.HouseRules, &r.ProximityList,
		&r.SleepingArrangements, &r.CreatedAt,
	)
	if err != nil {
		return model.Villa{}, err
	}
	return catalog.MapVilla(r), nil
}

// List returns every villa ordered by creation time.
func (r *VillaRepo) List(ctx context.Context) ([]model.Villa, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+villaColumns+` FROM villas ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Villa{}
	for rows.Next() {
		v, err := scanVilla(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID returns the villa or ErrNotFound.
func (r *VillaRepo) GetByID(ctx context.Context, id string) (model.Villa, error) {
	v, err := scanVilla(r.db.QueryRowContext(ctx, `SELECT `+villaColumns+` FROM villas WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Villa{}, ErrNotFound
	}
	return v, err
}

// Count returns the number of villas.
func (r *VillaRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM villas`).Scan(&n)
	return n, err
}

// SeedIfEmpty inserts villas when the table has no rows and reports how many
// were written.  A populated table is left untouched.
func (r *VillaRepo) SeedIfEmpty(ctx context.Context, villas []model.Villa) (int, error) {
	n, err := r.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO villas (id, name, description, price_per_night, bedrooms, guests, image_url,
		images, features, land_area, building_area, levels, bathrooms, pantry, pool_area,
		latitude, longitude, amenities_detail, house_rules, proximity_list, sleeping_arrangements)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	for _, v := range villas {
		images, _ := json.Marshal(nonNil(v.Images))
		features, _ := json.Marshal(nonNil(v.Features))
		_, err := tx.ExecContext(ctx, q,
			v.ID, v.Name, v.Description, v.PricePerNight, v.Bedrooms, v.Guests, v.ImageURL,
			images, features, v.LandArea, v.BuildingArea, v.Levels, v.Bathrooms, v.Pantry, v.PoolArea,
			coordinate(v.Latitude, v.HasCoordinates()), coordinate(v.Longitude, v.HasCoordinates()),
			nullJSON(v.AmenitiesDetail), nullJSON(v.HouseRules), nullJSON(v.ProximityList), nullJSON(v.SleepingArrangements),
		)
		if err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(villas), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func coordinate(f float64, ok bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: ok}
}

func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
