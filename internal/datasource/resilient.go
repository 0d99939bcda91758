package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// Resilient sends every call to the primary source through a circuit
// breaker.  Reads that fail, or are refused while the circuit is open, are
// answered by the fallback source and the request is marked as degraded.
// Writes are never answered by the fallback: a booking or subscription the
// store did not accept is reported as an error.
type Resilient struct {
	primary  Source
	fallback Source
	cb       *gobreaker.CircuitBreaker
	log      logrus.FieldLogger
}

// BreakerSettings tunes the circuit.  Zero values take the defaults used in
// production: trip after 3 consecutive failures, probe again after 15s.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// NewResilient wraps primary with fallback answers for reads.
func NewResilient(primary, fallback Source, s BreakerSettings, log logrus.FieldLogger) *Resilient {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 3
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 15 * time.Second
	}
	r := &Resilient{primary: primary, fallback: fallback, log: log}
	r.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "store",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("store circuit changed state")
		},
		// misses and overlap rejections say nothing about the store's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, repository.ErrNotFound) ||
				errors.Is(err, booking.ErrDatesOverlap) || errors.Is(err, context.Canceled)
		},
	})
	return r
}

// State exposes the breaker state for health reporting.
func (r *Resilient) State() gobreaker.State { return r.cb.State() }

func read[T any](ctx context.Context, r *Resilient, op string, live, fb func() (T, error)) (T, error) {
	out, err := r.cb.Execute(func() (interface{}, error) { return live() })
	if err == nil {
		return out.(T), nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		var zero T
		return zero, err
	}
	r.log.WithField("op", op).WithError(err).Warn("store read failed; serving fallback data")
	return fb()
}

// direct runs call through the breaker with no fallback answer.
func direct[T any](r *Resilient, call func() (T, error)) (T, error) {
	out, err := r.cb.Execute(func() (interface{}, error) { return call() })
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

func (r *Resilient) ListVillas(ctx context.Context) ([]model.Villa, error) {
	return read(ctx, r, "list_villas",
		func() ([]model.Villa, error) { return r.primary.ListVillas(ctx) },
		func() ([]model.Villa, error) { return r.fallback.ListVillas(ctx) })
}

func (r *Resilient) GetVilla(ctx context.Context, id string) (model.Villa, error) {
	return read(ctx, r, "get_villa",
		func() (model.Villa, error) { return r.primary.GetVilla(ctx, id) },
		func() (model.Villa, error) { return r.fallback.GetVilla(ctx, id) })
}

func (r *Resilient) ListJournal(ctx context.Context, limit int) ([]model.JournalPost, error) {
	return read(ctx, r, "list_journal",
		func() ([]model.JournalPost, error) { return r.primary.ListJournal(ctx, limit) },
		func() ([]model.JournalPost, error) { return r.fallback.ListJournal(ctx, limit) })
}

func (r *Resilient) JournalBySlug(ctx context.Context, slug string) (model.JournalPost, error) {
	return read(ctx, r, "journal_by_slug",
		func() (model.JournalPost, error) { return r.primary.JournalBySlug(ctx, slug) },
		func() (model.JournalPost, error) { return r.fallback.JournalBySlug(ctx, slug) })
}

func (r *Resilient) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return read(ctx, r, "list_experiences",
		func() ([]model.Experience, error) { return r.primary.ListExperiences(ctx) },
		func() ([]model.Experience, error) { return r.fallback.ListExperiences(ctx) })
}

func (r *Resilient) ListReviews(ctx context.Context) ([]model.Review, error) {
	return read(ctx, r, "list_reviews",
		func() ([]model.Review, error) { return r.primary.ListReviews(ctx) },
		func() ([]model.Review, error) { return r.fallback.ListReviews(ctx) })
}

func (r *Resilient) ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error) {
	return read(ctx, r, "list_bookings",
		func() ([]model.Booking, error) { return r.primary.ListBookingsForVilla(ctx, villaID) },
		func() ([]model.Booking, error) { return r.fallback.ListBookingsForVilla(ctx, villaID) })
}

func (r *Resilient) CreateBooking(ctx context.Context, b *model.Booking) error {
	_, err := direct(r, func() (struct{}, error) { return struct{}{}, r.primary.CreateBooking(ctx, b) })
	return err
}

func (r *Resilient) Subscribe(ctx context.Context, email string) (bool, error) {
	return direct(r, func() (bool, error) { return r.primary.Subscribe(ctx, email) })
}

// BookingView is the submission flow's view of a Resilient source.  Reads
// still go through the breaker but are never answered by the fallback
// dataset, so an outage surfaces as an error instead of a fixture villa or
// a fake occupied range.
type BookingView struct {
	r *Resilient
}

// Bookings returns the no-fallback view used by booking submissions.
func (r *Resilient) Bookings() *BookingView { return &BookingView{r: r} }

func (v *BookingView) GetVilla(ctx context.Context, id string) (model.Villa, error) {
	return direct(v.r, func() (model.Villa, error) { return v.r.primary.GetVilla(ctx, id) })
}

func (v *BookingView) ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error) {
	return direct(v.r, func() ([]model.Booking, error) { return v.r.primary.ListBookingsForVilla(ctx, villaID) })
}

func (v *BookingView) CreateBooking(ctx context.Context, b *model.Booking) error {
	return v.r.CreateBooking(ctx, b)
}
