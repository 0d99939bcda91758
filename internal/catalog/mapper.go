// Package catalog turns raw `villas` rows into model.Villa values and
// prepares them for presentation (map markers, galleries, detail defaults).
package catalog

import (
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// VillaRow mirrors a `villas` row exactly as scanned.  Nullable columns use
// sql.Null* types, JSON columns arrive as raw bytes and the coordinates are
// kept as untyped driver values (DECIMAL comes back as []byte, fixtures may
// hold float64 or string) so SafeFloat decides what is usable.
type VillaRow struct {
	ID                   string
	Name                 string
	Description          sql.NullString
	PricePerNight        int64
	Bedrooms             int
	Guests               int
	ImageURL             sql.NullString
	Images               []byte
	Features             []byte
	LandArea             sql.NullFloat64
	BuildingArea         sql.NullFloat64
	Levels               sql.NullInt64
	Bathrooms            sql.NullInt64
	Pantry               sql.NullInt64
	PoolArea             sql.NullInt64
	Latitude             any
	Longitude            any
	AmenitiesDetail      []byte
	HouseRules           []byte
	ProximityList        []byte
	SleepingArrangements []byte
	CreatedAt            time.Time
}

// MapVilla normalizes a row.  Array columns default to empty slices, the
// coordinates go through SafeFloat and nested JSON passes through untouched.
func MapVilla(r VillaRow) model.Villa {
	return model.Villa{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          r.Description.String,
		PricePerNight:        r.PricePerNight,
		Bedrooms:             r.Bedrooms,
		Guests:               r.Guests,
		ImageURL:             r.ImageURL.String,
		Images:               stringList(r.Images),
		Features:             stringList(r.Features),
		LandArea:             r.LandArea.Float64,
		BuildingArea:         r.BuildingArea.Float64,
		Levels:               int(r.Levels.Int64),
		Bathrooms:            int(r.Bathrooms.Int64),
		Pantry:               int(r.Pantry.Int64),
		PoolArea:             int(r.PoolArea.Int64),
		Latitude:             SafeFloat(r.Latitude),
		Longitude:            SafeFloat(r.Longitude),
		AmenitiesDetail:      rawJSON(r.AmenitiesDetail),
		HouseRules:           rawJSON(r.HouseRules),
		ProximityList:        rawJSON(r.ProximityList),
		SleepingArrangements: rawJSON(r.SleepingArrangements),
		CreatedAt:            r.CreatedAt,
	}
}

// MapVillas maps every row, preserving order.
func MapVillas(rows []VillaRow) []model.Villa {
	out := make([]model.Villa, 0, len(rows))
	for _, r := range rows {
		out = append(out, MapVilla(r))
	}
	return out
}

// SafeFloat coerces a loosely typed value to a float.  nil, unparseable
// input and non-finite results all become NaN; finite numbers pass through.
func SafeFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case []byte:
		return SafeFloat(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return math.NaN()
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		f = n
	case *float64:
		if t == nil {
			return math.NaN()
		}
		f = *t
	case sql.NullFloat64:
		if !t.Valid {
			return math.NaN()
		}
		f = t.Float64
	case sql.NullString:
		if !t.Valid {
			return math.NaN()
		}
		return SafeFloat(t.String)
	default:
		return math.NaN()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func stringList(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func rawJSON(raw []byte) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp
}
