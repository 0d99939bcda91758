package catalog

import (
	"fmt"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// DefaultAmenities is shown when a villa has no amenities_detail.
func DefaultAmenities() model.AmenityCategories {
	return model.AmenityCategories{
		"Wellness": {"Private infinity pool", "Outdoor rain shower", "Yoga deck"},
		"Living":   {"Air conditioning", "High-speed Wi-Fi", "Smart TV"},
		"Kitchen":  {"Fully equipped kitchen", "Espresso machine", "Daily breakfast on request"},
		"Service":  {"Daily housekeeping", "Airport transfer on request", "24/7 villa manager"},
	}
}

// DefaultHouseRules uses the villa capacity as the guest limit.
func DefaultHouseRules(maxGuests int) model.HouseRules {
	return model.HouseRules{
		CheckIn:        "14:00",
		CheckOut:       "11:00",
		PartiesAllowed: false,
		SmokingAllowed: false,
		PetsAllowed:    false,
		MaxGuests:      maxGuests,
	}
}

// DefaultProximity lists the landmarks every villa in the portfolio is near.
func DefaultProximity() []model.ProximityItem {
	return []model.ProximityItem{
		{Name: "Ubud Monkey Forest", Distance: "10 min drive"},
		{Name: "Tegallalang Rice Terrace", Distance: "20 min drive"},
		{Name: "Ngurah Rai International Airport", Distance: "75 min drive"},
	}
}

// DefaultSleepingArrangements generates one king bedroom per bedroom count.
func DefaultSleepingArrangements(bedrooms int) []model.SleepingArrangement {
	if bedrooms < 1 {
		bedrooms = 1
	}
	out := make([]model.SleepingArrangement, 0, bedrooms)
	for i := 1; i <= bedrooms; i++ {
		out = append(out, model.SleepingArrangement{
			Room: fmt.Sprintf("Bedroom %d", i),
			Bed:  "King bed",
			View: "Garden view",
		})
	}
	return out
}
