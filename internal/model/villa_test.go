package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestVillaJSONRoundTrip(t *testing.T) {
	in := Villa{
		ID:                   "royal-jungle-suite",
		Name:                 "Royal Jungle Suite",
		PricePerNight:        3_500_000,
		Bedrooms:             2,
		Guests:               4,
		ImageURL:             "/img/royal.jpg",
		Images:               []string{"/img/royal-1.jpg"},
		Features:             []string{"Private pool"},
		LandArea:             450.5,
		BuildingArea:         220,
		Levels:               2,
		Bathrooms:            2,
		Pantry:               1,
		PoolArea:             1,
		Latitude:             -8.4905,
		Longitude:            115.247,
		HouseRules:           json.RawMessage(`{"check_in":"14:00","max_guests":4}`),
		SleepingArrangements: json.RawMessage(`[{"room":"Master"}]`),
		CreatedAt:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Villa
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip changed villa:\n in  %+v\n out %+v", in, out)
	}
}

func TestVillaJSONWithoutCoordinates(t *testing.T) {
	raw, err := json.Marshal(Villa{ID: "v", Latitude: math.NaN(), Longitude: 115})
	if err != nil {
		t.Fatal(err)
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatal(err)
	}
	if wire["latitude"] != nil || wire["longitude"] != nil {
		t.Fatalf("coordinates = %v / %v, want null", wire["latitude"], wire["longitude"])
	}

	var out Villa
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out.HasCoordinates() || !math.IsNaN(out.Latitude) {
		t.Fatalf("coordinates = %v, %v", out.Latitude, out.Longitude)
	}
	if out.Images == nil || out.Features == nil {
		t.Fatal("nil slices after decode")
	}
}
