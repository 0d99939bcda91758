package datasource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/iliyamo/bali-villa-booking/internal/booking"
	"github.com/iliyamo/bali-villa-booking/internal/logging"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// stubSource fails every call with err and counts calls.
type stubSource struct {
	err   error
	calls atomic.Int32
}

func (s *stubSource) fail() error { s.calls.Add(1); return s.err }

func (s *stubSource) ListVillas(context.Context) ([]model.Villa, error) { return nil, s.fail() }
func (s *stubSource) GetVilla(context.Context, string) (model.Villa, error) {
	return model.Villa{}, s.fail()
}
func (s *stubSource) ListJournal(context.Context, int) ([]model.JournalPost, error) {
	return nil, s.fail()
}
func (s *stubSource) JournalBySlug(context.Context, string) (model.JournalPost, error) {
	return model.JournalPost{}, s.fail()
}
func (s *stubSource) ListExperiences(context.Context) ([]model.Experience, error) {
	return nil, s.fail()
}
func (s *stubSource) ListReviews(context.Context) ([]model.Review, error) { return nil, s.fail() }
func (s *stubSource) ListBookingsForVilla(context.Context, string) ([]model.Booking, error) {
	return nil, s.fail()
}
func (s *stubSource) CreateBooking(context.Context, *model.Booking) error { return s.fail() }
func (s *stubSource) Subscribe(context.Context, string) (bool, error)     { return false, s.fail() }

func TestFixtureVillas(t *testing.T) {
	villas := FixtureVillas()
	if len(villas) == 0 {
		t.Fatal("no fixtures")
	}
	var found bool
	for _, v := range villas {
		if !v.HasCoordinates() {
			t.Errorf("fixture %s lacks coordinates", v.ID)
		}
		if v.Name == "Royal Jungle Suite" {
			found = true
			if v.PricePerNight != 3_500_000 {
				t.Errorf("unexpected rate %d", v.PricePerNight)
			}
		}
	}
	if !found {
		t.Fatal("Royal Jungle Suite missing")
	}
}

func TestFallbackBookingsAnchoredOnToday(t *testing.T) {
	f := NewFallback(0)
	f.now = func() time.Time { return time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC) }
	got, err := f.ListBookingsForVilla(context.Background(), "royal-jungle-suite")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].StartDate != "2026-05-04" || got[0].EndDate != "2026-05-07" {
		t.Fatalf("unexpected fake ranges %+v", got)
	}
	if none, _ := f.ListBookingsForVilla(context.Background(), "unknown"); len(none) != 0 {
		t.Fatalf("unknown villa should have no ranges, got %+v", none)
	}
}

func TestFallbackCreateBooking(t *testing.T) {
	f := NewFallback(time.Millisecond)
	b := &model.Booking{VillaID: "royal-jungle-suite"}
	if err := f.CreateBooking(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if len(b.ID) != 36 || b.Status != model.StatusPending {
		t.Fatalf("unexpected booking %+v", b)
	}

	slow := NewFallback(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := slow.CreateBooking(ctx, &model.Booking{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFallbackLookups(t *testing.T) {
	f := NewFallback(0)
	ctx := context.Background()
	if _, err := f.GetVilla(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	posts, _ := f.ListJournal(ctx, 2)
	if len(posts) != 2 || posts[0].Content != "" {
		t.Fatalf("journal list should be limited and body-less: %+v", posts)
	}
	p, err := f.JournalBySlug(ctx, posts[0].Slug)
	if err != nil || p.Content == "" {
		t.Fatalf("expected full post, got %+v %v", p, err)
	}
}

func TestResilientServesFallbackOnFailure(t *testing.T) {
	primary := &stubSource{err: errors.New("dial tcp: connection refused")}
	r := NewResilient(primary, NewFallback(0), BreakerSettings{}, logging.Discard())

	ctx, trace := WithTrace(context.Background())
	villas, err := r.ListVillas(ctx)
	if err != nil || len(villas) != len(FixtureVillas()) {
		t.Fatalf("expected fixture villas, got %d %v", len(villas), err)
	}
	if trace.Name() != NameFallback {
		t.Fatalf("trace = %s, want fallback", trace.Name())
	}

	if err := r.CreateBooking(context.Background(), &model.Booking{}); err == nil {
		t.Fatal("writes must not fall back to simulated success")
	}
	if _, err := r.Subscribe(context.Background(), "a@b.c"); err == nil {
		t.Fatal("subscribe must not fall back")
	}
}

func TestResilientOpensCircuit(t *testing.T) {
	primary := &stubSource{err: errors.New("i/o timeout")}
	r := NewResilient(primary, NewFallback(0), BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Hour}, logging.Discard())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := r.ListExperiences(ctx); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	if r.State() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", r.State())
	}
	if n := primary.calls.Load(); n != 2 {
		t.Fatalf("primary called %d times, want 2", n)
	}
}

func TestResilientPassesNotFoundAndConflicts(t *testing.T) {
	r := NewResilient(&stubSource{err: repository.ErrNotFound}, NewFallback(0), BreakerSettings{ConsecutiveFailures: 1}, logging.Discard())
	ctx, trace := WithTrace(context.Background())
	if _, err := r.GetVilla(ctx, "royal-jungle-suite"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if trace.Name() != NameLive {
		t.Fatal("a miss must not be served from fallback")
	}

	conflict := &stubSource{err: booking.ErrDatesOverlap}
	r = NewResilient(conflict, NewFallback(0), BreakerSettings{ConsecutiveFailures: 1}, logging.Discard())
	for i := 0; i < 3; i++ {
		if err := r.CreateBooking(context.Background(), &model.Booking{}); !errors.Is(err, booking.ErrDatesOverlap) {
			t.Fatalf("expected overlap error, got %v", err)
		}
	}
	if r.State() != gobreaker.StateClosed {
		t.Fatal("overlap rejections must not trip the circuit")
	}
}

func TestTraceWithoutContext(t *testing.T) {
	MarkFallback(context.Background())
	var tr *Trace
	if tr.Name() != NameLive {
		t.Fatal("nil trace reports live")
	}
}

func TestBookingViewNeverServesFallback(t *testing.T) {
	primary := &stubSource{err: errors.New("dial tcp: connection refused")}
	r := NewResilient(primary, NewFallback(0), BreakerSettings{}, logging.Discard())
	svc := booking.NewService(r.Bookings(), nil, "6281234567890", logging.Discard()).WithCalendar(r)

	today := booking.Day(time.Now())
	submit := func(villaID string, from, to int) booking.Result {
		return svc.Submit(context.Background(), booking.Request{
			VillaID:   villaID,
			StartDate: booking.FormatDay(today.AddDate(0, 0, from)),
			EndDate:   booking.FormatDay(today.AddDate(0, 0, to)),
			Guests:    2,
			Guest:     model.GuestDetails{FullName: "Jane Doe", Email: "jane@test.com", Phone: "+6281111111"},
		})
	}

	cases := []struct {
		name     string
		villa    string
		from, to int
	}{
		// {3, 6} is a fixture range of this villa
		{"dates inside a fixture range", "royal-jungle-suite", 4, 5},
		{"villa missing from fixtures", "admin-added-villa", 7, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := submit(tc.villa, tc.from, tc.to)
			if res.Success || res.Code != booking.CodeInfrastructure {
				t.Fatalf("result = %+v, want infrastructure failure", res)
			}
		})
	}

	// the calendar still degrades to the fixture ranges
	ctx, trace := WithTrace(context.Background())
	days, err := svc.BlockedDates(ctx, "royal-jungle-suite")
	if err != nil || len(days) == 0 || trace.Name() != NameFallback {
		t.Fatalf("blocked dates = %d, err = %v, trace = %s", len(days), err, trace.Name())
	}
}

func TestBookingViewPassesMisses(t *testing.T) {
	r := NewResilient(&stubSource{err: repository.ErrNotFound}, NewFallback(0), BreakerSettings{}, logging.Discard())
	if _, err := r.Bookings().GetVilla(context.Background(), "gone"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
