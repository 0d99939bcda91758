// Package datasource selects where the public site reads from.  Live talks
// to MySQL, Fallback serves a fixed built-in dataset and Resilient puts a
// circuit breaker in front of Live that answers reads from Fallback while
// the store is unreachable.
package datasource

import (
	"context"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// Names reported in the X-Data-Source header.
const (
	NameLive     = "live"
	NameFallback = "fallback"
)

// Source is everything the public handlers and the booking flow read or
// write.  It satisfies booking.Store.
type Source interface {
	ListVillas(ctx context.Context) ([]model.Villa, error)
	GetVilla(ctx context.Context, id string) (model.Villa, error)
	ListJournal(ctx context.Context, limit int) ([]model.JournalPost, error)
	JournalBySlug(ctx context.Context, slug string) (model.JournalPost, error)
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	Subscribe(ctx context.Context, email string) (bool, error)
}
