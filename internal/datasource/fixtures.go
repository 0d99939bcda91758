package datasource

import (
	"encoding/json"
	"time"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

var fixtureCreated = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FixtureVillas is the built-in villa set.  It backs the fallback source and
// seeds an empty villas table.
func FixtureVillas() []model.Villa {
	return []model.Villa{
		{
			ID:            "royal-jungle-suite",
			Name:          "Royal Jungle Suite",
			Description:   "A secluded two-level suite above the Ayung river valley with a private infinity pool.",
			PricePerNight: 3_500_000,
			Bedrooms:      2,
			Guests:        4,
			ImageURL:      "/images/villas/royal-jungle-suite/main.jpg",
			Images: []string{
				"/images/villas/royal-jungle-suite/main.jpg",
				"/images/villas/royal-jungle-suite/pool.jpg",
				"/images/villas/royal-jungle-suite/bedroom.jpg",
				"/images/villas/royal-jungle-suite/bath.jpg",
			},
			Features:     []string{"Infinity pool", "River view", "Private chef"},
			LandArea:     600,
			BuildingArea: 240,
			Levels:       2,
			Bathrooms:    2,
			Pantry:       1,
			PoolArea:     32,
			Latitude:     -8.4905,
			Longitude:    115.2470,
			HouseRules: mustJSON(model.HouseRules{
				CheckIn: "14:00", CheckOut: "11:00", MaxGuests: 4,
			}),
			CreatedAt: fixtureCreated,
		},
		{
			ID:            "uluwatu-cliff-villa",
			Name:          "Uluwatu Cliff Villa",
			Description:   "Clifftop living with sunset views over the Indian Ocean, minutes from Padang Padang beach.",
			PricePerNight: 5_200_000,
			Bedrooms:      3,
			Guests:        6,
			ImageURL:      "/images/villas/uluwatu-cliff-villa/main.jpg",
			Images:        []string{},
			Features:      []string{"Ocean view", "Sunset deck", "Gym"},
			LandArea:      900,
			BuildingArea:  380,
			Levels:        1,
			Bathrooms:     3,
			Pantry:        1,
			PoolArea:      45,
			Latitude:      -8.8291,
			Longitude:     115.0849,
			CreatedAt:     fixtureCreated.Add(time.Hour),
		},
		{
			ID:            "canggu-rice-field-house",
			Name:          "Canggu Rice Field House",
			Description:   "A joglo-style family house between the rice paddies and Echo Beach.",
			PricePerNight: 2_750_000,
			Bedrooms:      4,
			Guests:        8,
			ImageURL:      "/images/villas/canggu-rice-field-house/main.jpg",
			Images: []string{
				"/images/villas/canggu-rice-field-house/main.jpg",
				"/images/villas/canggu-rice-field-house/garden.jpg",
			},
			Features:     []string{"Rice field view", "Kids pool", "Bicycles"},
			LandArea:     1200,
			BuildingArea: 420,
			Levels:       2,
			Bathrooms:    4,
			Pantry:       1,
			PoolArea:     50,
			Latitude:     -8.6478,
			Longitude:    115.1385,
			CreatedAt:    fixtureCreated.Add(2 * time.Hour),
		},
	}
}

// fixtureBlocked are the fake occupied ranges shown per villa, as day
// offsets from today: {start, end}.
var fixtureBlocked = map[string][][2]int{
	"royal-jungle-suite":      {{3, 6}, {14, 18}},
	"uluwatu-cliff-villa":     {{1, 4}, {20, 27}},
	"canggu-rice-field-house": {{7, 10}},
}

func fixtureJournal() []model.JournalPost {
	pub := func(d int) *time.Time {
		t := fixtureCreated.AddDate(0, 0, d)
		return &t
	}
	return []model.JournalPost{
		{
			ID: "j3", Slug: "a-slow-morning-in-ubud", Title: "A Slow Morning in Ubud",
			Excerpt:  "Temple bells, jamu and a walk along the Campuhan ridge before the day begins.",
			Content:  "Ubud rewards early risers. Start at the Campuhan ridge before the heat sets in, then stop for jamu at the market.",
			Category: "Travel", ImageURL: "/images/journal/ubud-morning.jpg", Author: "Villa Concierge",
			PublishedAt: pub(60), CreatedAt: fixtureCreated,
		},
		{
			ID: "j2", Slug: "what-to-pack-for-the-wet-season", Title: "What to Pack for the Wet Season",
			Excerpt:  "Bali between November and March is green, warm and surprisingly pleasant.",
			Content:  "Light layers, a packable rain shell and sandals that can get wet cover most of what the wet season needs.",
			Category: "Guides", ImageURL: "/images/journal/wet-season.jpg", Author: "Villa Concierge",
			PublishedAt: pub(30), CreatedAt: fixtureCreated,
		},
		{
			ID: "j1", Slug: "private-chef-nights", Title: "Private Chef Nights",
			Excerpt:  "Balinese rijsttafel served by the pool, cooked by our resident chef.",
			Content:  "Every villa can book a private chef evening. Menus follow the market and the season.",
			Category: "Dining", ImageURL: "/images/journal/chef.jpg", Author: "Villa Concierge",
			PublishedAt: pub(10), CreatedAt: fixtureCreated,
		},
	}
}

func fixtureExperiences() []model.Experience {
	return []model.Experience{
		{ID: "e1", Title: "Sunrise Trek on Mount Batur", Description: "A guided pre-dawn hike with breakfast at the summit.", Category: "Adventure", ImageURL: "/images/experiences/batur.jpg", CTALabel: "Enquire", CreatedAt: fixtureCreated},
		{ID: "e2", Title: "Balinese Cooking Class", Description: "Market visit and hands-on cooking with our chef.", Category: "Culinary", ImageURL: "/images/experiences/cooking.jpg", CTALabel: "Book a class", CreatedAt: fixtureCreated},
		{ID: "e3", Title: "Floating Breakfast", Description: "Breakfast served on your private pool.", Category: "In-villa", ImageURL: "/images/experiences/floating-breakfast.jpg", CTALabel: "Add to stay", CreatedAt: fixtureCreated},
	}
}

func fixtureReviews() []model.Review {
	return []model.Review{
		{ID: "r1", GuestName: "Sophie M.", Quote: "The most peaceful week we have ever had. The staff thought of everything.", Source: "Google", IsFeatured: true},
		{ID: "r2", GuestName: "Daniel K.", Quote: "Waking up to the jungle from the pool was unreal.", Source: "Airbnb", IsFeatured: true},
		{ID: "r3", GuestName: "Rina A.", Quote: "Perfect for our family of eight, and the chef was a highlight.", Source: "TripAdvisor", IsFeatured: true},
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
