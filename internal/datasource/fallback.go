package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// Fallback serves the fixed built-in dataset.  Bookings are simulated: the
// call waits Delay, then succeeds with a fresh id without storing anything.
type Fallback struct {
	Delay time.Duration
	now   func() time.Time
}

// NewFallback returns a Fallback with the given simulated booking latency.
func NewFallback(delay time.Duration) *Fallback {
	return &Fallback{Delay: delay, now: time.Now}
}

func (f *Fallback) ListVillas(ctx context.Context) ([]model.Villa, error) {
	MarkFallback(ctx)
	return FixtureVillas(), nil
}

func (f *Fallback) GetVilla(ctx context.Context, id string) (model.Villa, error) {
	MarkFallback(ctx)
	for _, v := range FixtureVillas() {
		if v.ID == id {
			return v, nil
		}
	}
	return model.Villa{}, repository.ErrNotFound
}

func (f *Fallback) ListJournal(ctx context.Context, limit int) ([]model.JournalPost, error) {
	MarkFallback(ctx)
	posts := fixtureJournal()
	for i := range posts {
		posts[i].Content = ""
	}
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *Fallback) JournalBySlug(ctx context.Context, slug string) (model.JournalPost, error) {
	MarkFallback(ctx)
	for _, p := range fixtureJournal() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.JournalPost{}, repository.ErrNotFound
}

func (f *Fallback) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	MarkFallback(ctx)
	return fixtureExperiences(), nil
}

func (f *Fallback) ListReviews(ctx context.Context) ([]model.Review, error) {
	MarkFallback(ctx)
	return fixtureReviews(), nil
}

// ListBookingsForVilla returns the fake confirmed ranges of the villa,
// anchored on today.
func (f *Fallback) ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error) {
	MarkFallback(ctx)
	today := booking.Day(f.now())
	out := []model.Booking{}
	for i, r := range fixtureBlocked[villaID] {
		out = append(out, model.Booking{
			ID:        fmt.Sprintf("fixture-%s-%d", villaID, i),
			VillaID:   villaID,
			StartDate: booking.FormatDay(today.AddDate(0, 0, r[0])),
			EndDate:   booking.FormatDay(today.AddDate(0, 0, r[1])),
			Status:    model.StatusConfirmed,
			CreatedAt: fixtureCreated,
		})
	}
	return out, nil
}

// CreateBooking simulates a successful insert.
func (f *Fallback) CreateBooking(ctx context.Context, b *model.Booking) error {
	MarkFallback(ctx)
	if err := wait(ctx, f.Delay); err != nil {
		return err
	}
	b.ID = uuid.NewString()
	b.CreatedAt = f.now().UTC()
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	return nil
}

// Subscribe accepts any address and reports it as new.
func (f *Fallback) Subscribe(ctx context.Context, email string) (bool, error) {
	MarkFallback(ctx)
	return strings.TrimSpace(email) != "", nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
