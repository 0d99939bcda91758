package model

import (
	"encoding/json"
	"math"
	"time"
)

// Villa is a rentable property as the public site sees it.  Rows from the
// `villas` table are normalized into this shape by the catalog mapper.
//
// Fields:
//
//	ID            – opaque identifier.
//	PricePerNight – nightly rate in whole rupiah (IDR has no minor unit).
//	Images        – gallery URLs in display order, never nil.
//	Features      – short feature labels, never nil.
//	Latitude/Longitude – NaN when the stored value is missing or invalid.
//	AmenitiesDetail, HouseRules, ProximityList, SleepingArrangements – raw
//	JSON passed through without validation; nil when absent.
type Villa struct {
	ID                   string          // villas.id
	Name                 string          // villas.name
	Description          string          // villas.description
	PricePerNight        int64           // villas.price_per_night
	Bedrooms             int             // villas.bedrooms
	Guests               int             // villas.guests
	ImageURL             string          // villas.image_url
	Images               []string        // villas.images
	Features             []string        // villas.features
	LandArea             float64         // villas.land_area (m²)
	BuildingArea         float64         // villas.building_area (m²)
	Levels               int             // villas.levels
	Bathrooms            int             // villas.bathrooms
	Pantry               int             // villas.pantry
	PoolArea             int             // villas.pool_area
	Latitude             float64         // villas.latitude
	Longitude            float64         // villas.longitude
	AmenitiesDetail      json.RawMessage // villas.amenities_detail
	HouseRules           json.RawMessage // villas.house_rules
	ProximityList        json.RawMessage // villas.proximity_list
	SleepingArrangements json.RawMessage // villas.sleeping_arrangements
	CreatedAt            time.Time       // villas.created_at
}

// HasCoordinates reports whether both coordinates are finite numbers.
// Only such villas may reach map or distance logic.
func (v Villa) HasCoordinates() bool {
	return isFinite(v.Latitude) && isFinite(v.Longitude)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// villaJSON is the wire form.  Coordinates are pointers because JSON has no
// NaN; a villa without usable coordinates serializes them as null.
type villaJSON struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	PricePerNight        int64           `json:"price_per_night"`
	Bedrooms             int             `json:"bedrooms"`
	Guests               int             `json:"guests"`
	ImageURL             string          `json:"image_url"`
	Images               []string        `json:"images"`
	Features             []string        `json:"features"`
	LandArea             float64         `json:"land_area"`
	BuildingArea         float64         `json:"building_area"`
	Levels               int             `json:"levels"`
	Bathrooms            int             `json:"bathrooms"`
	Pantry               int             `json:"pantry"`
	PoolArea             int             `json:"pool_area"`
	Latitude             *float64        `json:"latitude"`
	Longitude            *float64        `json:"longitude"`
	AmenitiesDetail      json.RawMessage `json:"amenities_detail,omitempty"`
	HouseRules           json.RawMessage `json:"house_rules,omitempty"`
	ProximityList        json.RawMessage `json:"proximity_list,omitempty"`
	SleepingArrangements json.RawMessage `json:"sleeping_arrangements,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// MarshalJSON implements json.Marshaler.
func (v Villa) MarshalJSON() ([]byte, error) {
	out := villaJSON{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		PricePerNight: v.PricePerNight,
		Bedrooms:      v.Bedrooms,
		Guests:        v.Guests,
		ImageURL:      v.ImageURL,
		Images:        v.Images,
		Features:      v.Features,
		LandArea:      v.LandArea,
		BuildingArea:  v.BuildingArea,
		Levels:        v.Levels,
		Bathrooms:     v.Bathrooms,
		Pantry:        v.Pantry,
		PoolArea:      v.PoolArea,
		CreatedAt:     v.CreatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if v.HasCoordinates() {
		lat, lng := v.Latitude, v.Longitude
		out.Latitude, out.Longitude = &lat, &lng
	}
	if json.Valid(v.AmenitiesDetail) {
		out.AmenitiesDetail = v.AmenitiesDetail
	}
	if json.Valid(v.HouseRules) {
		out.HouseRules = v.HouseRules
	}
	if json.Valid(v.ProximityList) {
		out.ProximityList = v.ProximityList
	}
	if json.Valid(v.SleepingArrangements) {
		out.SleepingArrangements = v.SleepingArrangements
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON.  Null or missing coordinates become
// NaN and null arrays become empty.
func (v *Villa) UnmarshalJSON(data []byte) error {
	var in villaJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*v = Villa{
		ID:                   in.ID,
		Name:                 in.Name,
		Description:          in.Description,
		PricePerNight:        in.PricePerNight,
		Bedrooms:             in.Bedrooms,
		Guests:               in.Guests,
		ImageURL:             in.ImageURL,
		Images:               in.Images,
		Features:             in.Features,
		LandArea:             in.LandArea,
		BuildingArea:         in.BuildingArea,
		Levels:               in.Levels,
		Bathrooms:            in.Bathrooms,
		Pantry:               in.Pantry,
		PoolArea:             in.PoolArea,
		Latitude:             math.NaN(),
		Longitude:            math.NaN(),
		AmenitiesDetail:      in.AmenitiesDetail,
		HouseRules:           in.HouseRules,
		ProximityList:        in.ProximityList,
		SleepingArrangements: in.SleepingArrangements,
		CreatedAt:            in.CreatedAt,
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Features == nil {
		v.Features = []string{}
	}
	if in.Latitude != nil && in.Longitude != nil {
		v.Latitude, v.Longitude = *in.Latitude, *in.Longitude
	}
	return nil
}

// HouseRules is the decoded form of villas.house_rules.
type HouseRules struct {
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	PartiesAllowed bool   `json:"parties_allowed"`
	SmokingAllowed bool   `json:"smoking_allowed"`
	PetsAllowed    bool   `json:"pets_allowed"`
	MaxGuests      int    `json:"max_guests"`
}

// ProximityItem is a nearby point of interest.
type ProximityItem struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// SleepingArrangement describes one bedroom.
type SleepingArrangement struct {
	Room string `json:"room"`
	Bed  string `json:"bed"`
	View string `json:"view"`
}

// AmenityCategories maps a category label (e.g. "Wellness") to its items.
type AmenityCategories map[string][]string
