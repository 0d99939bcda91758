package catalog

import (
	"encoding/json"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// Marker is the minimal payload a map needs.
type Marker struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	PricePerNight int64   `json:"price_per_night"`
	ImageURL      string  `json:"image_url"`
}

// MapMarkers keeps only villas with finite coordinates.
func MapMarkers(villas []model.Villa) []Marker {
	out := make([]Marker, 0, len(villas))
	for _, v := range villas {
		if !v.HasCoordinates() {
			continue
		}
		out = append(out, Marker{
			ID:            v.ID,
			Name:          v.Name,
			Latitude:      v.Latitude,
			Longitude:     v.Longitude,
			PricePerNight: v.PricePerNight,
			ImageURL:      v.ImageURL,
		})
	}
	return out
}

const galleryFallbackSize = 4

// Gallery returns the villa's images, or the primary image repeated when the
// gallery is empty.  A villa without any image yields an empty slice.
func Gallery(v model.Villa) []string {
	if len(v.Images) > 0 {
		return v.Images
	}
	if v.ImageURL == "" {
		return []string{}
	}
	out := make([]string, galleryFallbackSize)
	for i := range out {
		out[i] = v.ImageURL
	}
	return out
}

// VillaDetails is the villa page payload: the villa plus its nested sections
// decoded and filled with defaults where the store had nothing usable.
type VillaDetails struct {
	Villa                model.Villa                 `json:"villa"`
	Gallery              []string                    `json:"gallery"`
	Amenities            model.AmenityCategories     `json:"amenities"`
	HouseRules           model.HouseRules            `json:"house_rules"`
	Proximity            []model.ProximityItem       `json:"proximity"`
	SleepingArrangements []model.SleepingArrangement `json:"sleeping_arrangements"`
}

// Details decodes the nested JSON sections of v.  Missing, malformed or
// empty sections are replaced with the house defaults so the page never
// renders an empty block.
func Details(v model.Villa) VillaDetails {
	d := VillaDetails{Villa: v, Gallery: Gallery(v)}

	var amenities model.AmenityCategories
	if decode(v.AmenitiesDetail, &amenities) && len(amenities) > 0 {
		d.Amenities = amenities
	} else {
		d.Amenities = DefaultAmenities()
	}

	var rules model.HouseRules
	if decode(v.HouseRules, &rules) && rules.CheckIn != "" && rules.CheckOut != "" {
		if rules.MaxGuests <= 0 {
			rules.MaxGuests = v.Guests
		}
		d.HouseRules = rules
	} else {
		d.HouseRules = DefaultHouseRules(v.Guests)
	}

	var proximity []model.ProximityItem
	if decode(v.ProximityList, &proximity) && len(proximity) > 0 {
		d.Proximity = proximity
	} else {
		d.Proximity = DefaultProximity()
	}

	var sleeping []model.SleepingArrangement
	if decode(v.SleepingArrangements, &sleeping) && len(sleeping) > 0 {
		d.SleepingArrangements = sleeping
	} else {
		d.SleepingArrangements = DefaultSleepingArrangements(v.Bedrooms)
	}
	return d
}

func decode(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
