package datasource

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// Live reads and writes the MySQL store through the repositories.
type Live struct {
	Villas      *repository.VillaRepo
	Bookings    *repository.BookingRepo
	Content     *repository.ContentRepo
	Subscribers *repository.SubscriberRepo
}

// NewLive builds the repositories over db.
func NewLive(db *sql.DB) *Live {
	return &Live{
		Villas:      repository.NewVillaRepo(db),
		Bookings:    repository.NewBookingRepo(db),
		Content:     repository.NewContentRepo(db),
		Subscribers: repository.NewSubscriberRepo(db),
	}
}

func (l *Live) ListVillas(ctx context.Context) ([]model.Villa, error) { return l.Villas.List(ctx) }

func (l *Live) GetVilla(ctx context.Context, id string) (model.Villa, error) {
	return l.Villas.GetByID(ctx, id)
}

func (l *Live) ListJournal(ctx context.Context, limit int) ([]model.JournalPost, error) {
	return l.Content.ListJournal(ctx, limit)
}

func (l *Live) JournalBySlug(ctx context.Context, slug string) (model.JournalPost, error) {
	return l.Content.JournalBySlug(ctx, slug)
}

func (l *Live) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return l.Content.ListExperiences(ctx)
}

func (l *Live) ListReviews(ctx context.Context) ([]model.Review, error) {
	return l.Content.ListFeaturedReviews(ctx)
}

func (l *Live) ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error) {
	return l.Bookings.ListActiveByVilla(ctx, villaID)
}

// CreateBooking re-runs the overlap check against the villa's bookings while
// the villa row is locked, then inserts.
func (l *Live) CreateBooking(ctx context.Context, b *model.Booking) error {
	start, err := booking.ParseDay(b.StartDate)
	if err != nil {
		return err
	}
	end, err := booking.ParseDay(b.EndDate)
	if err != nil {
		return err
	}
	return l.Bookings.CreateChecked(ctx, b, func(existing []model.Booking) error {
		if _, clash := booking.FindConflict(existing, start, end); clash {
			return booking.ErrDatesOverlap
		}
		return nil
	})
}

func (l *Live) Subscribe(ctx context.Context, email string) (bool, error) {
	return l.Subscribers.Subscribe(ctx, email)
}
