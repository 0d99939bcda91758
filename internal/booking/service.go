package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/logging"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/queue"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// ErrDatesOverlap is returned when the requested stay collides with a
// pending or confirmed booking of the same villa.
var ErrDatesOverlap = errors.New("selected dates overlap an existing booking")

// ErrPastCheckIn rejects stays that start before today.
var ErrPastCheckIn = errors.New("check-in date is in the past")

// Store is the data access the booking flow needs.  CreateBooking must
// re-check the overlap atomically and return ErrDatesOverlap on conflict;
// it fills in the generated ID and CreatedAt.
type Store interface {
	GetVilla(ctx context.Context, id string) (model.Villa, error)
	ListBookingsForVilla(ctx context.Context, villaID string) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
}

// Notifier receives booking events after the row is stored.  Failures are
// logged by the service and never undo the booking.
type Notifier interface {
	BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// Result codes.
const (
	CodeValidation     = "validation"
	CodeConflict       = "conflict"
	CodeNotFound       = "not_found"
	CodeInfrastructure = "infrastructure"
)

// Result is the outcome of a submission.  Exactly one of the success or
// failure field groups is populated.
type Result struct {
	Success        bool   `json:"success"`
	BookingID      string `json:"booking_id,omitempty"`
	Reference      string `json:"reference,omitempty"`
	WhatsAppURL    string `json:"whatsapp_url,omitempty"`
	Quote          *Quote `json:"quote,omitempty"`
	FormattedTotal string `json:"formatted_total,omitempty"`
	Error          string `json:"error,omitempty"`
	Code           string `json:"code,omitempty"`
	Field          string `json:"field,omitempty"`
	Err            error  `json:"-"`
}

// Service runs the booking submission flow.
type Service struct {
	store          Store
	calendar       Store
	notifier       Notifier
	whatsAppNumber string
	log            logrus.FieldLogger
	now            func() time.Time
}

// NewService wires the flow.  notifier may be nil.
func NewService(store Store, notifier Notifier, whatsAppNumber string, log logrus.FieldLogger) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		store:          store,
		calendar:       store,
		notifier:       notifier,
		whatsAppNumber: whatsAppNumber,
		log:            log,
		now:            time.Now,
	}
}

// WithCalendar makes BlockedDates and CheckAvailability read from c
// instead of the submission store.  Submissions keep using the store given
// to NewService.
func (s *Service) WithCalendar(c Store) *Service {
	if c != nil {
		s.calendar = c
	}
	return s
}

// Submit validates, prices and stores a booking request, then builds the
// WhatsApp hand-off link.  It never panics or returns an error: every
// failure is reported through Result.
func (s *Service) Submit(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("booking submission panicked")
			res = failure(fmt.Errorf("booking: panic: %v", r))
		}
	}()
	c, err := s.submit(ctx, req)
	if err != nil {
		return failure(err)
	}
	return Result{
		Success:        true,
		BookingID:      c.Booking.ID,
		Reference:      c.Reference,
		WhatsAppURL:    c.WhatsAppURL,
		Quote:          &c.Quote,
		FormattedTotal: FormatIDR(c.Quote.Total),
	}
}

// Confirmation is the internal success value of a submission.
type Confirmation struct {
	Booking     model.Booking
	Quote       Quote
	Reference   string
	WhatsAppURL string
}

func (s *Service) submit(ctx context.Context, req Request) (*Confirmation, error) {
	stay, err := ValidateRequest(req)
	if err != nil {
		return nil, err
	}
	if stay.Start.Before(Day(s.now())) {
		return nil, &ValidationError{Field: "start_date", Message: ErrPastCheckIn.Error()}
	}
	guest := NormalizeGuest(req.Guest)
	log := s.log.WithField("villa_id", req.VillaID)

	villa, err := s.store.GetVilla(ctx, req.VillaID)
	if err != nil {
		return nil, fmt.Errorf("load villa: %w", err)
	}
	if villa.Guests > 0 && req.Guests > villa.Guests {
		return nil, &ValidationError{Field: "guests", Message: fmt.Sprintf("this villa sleeps at most %d guests", villa.Guests)}
	}

	quote := NewQuote(stay.Nights, villa.PricePerNight)
	if req.TotalPrice != 0 && req.TotalPrice != quote.Total {
		log.WithFields(logrus.Fields{
			"client_total": req.TotalPrice,
			"server_total": quote.Total,
		}).Warn("client total differs from server quote; using server quote")
	}

	existing, err := s.store.ListBookingsForVilla(ctx, villa.ID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if _, clash := FindConflict(existing, stay.Start, stay.End); clash {
		return nil, ErrDatesOverlap
	}

	b := model.Booking{
		VillaID:       villa.ID,
		StartDate:     FormatDay(stay.Start),
		EndDate:       FormatDay(stay.End),
		TotalPrice:    quote.Total,
		Status:        model.StatusPending,
		GuestName:     guest.FullName,
		GuestEmail:    guest.Email,
		GuestWhatsApp: guest.Phone,
	}
	if guest.SpecialRequest != "" {
		sr := guest.SpecialRequest
		b.SpecialRequest = &sr
	}
	if err := s.store.CreateBooking(ctx, &b); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	ref := ReferenceCode(b.ID)
	msg := ComposeMessage(MessageData{
		VillaName: villa.Name,
		Stay:      stay,
		Guests:    req.Guests,
		Total:     quote.Total,
		Guest: GuestContact{
			FullName:       guest.FullName,
			Email:          guest.Email,
			Phone:          guest.Phone,
			SpecialRequest: guest.SpecialRequest,
		},
		Reference: ref,
	})
	link := WhatsAppLink(s.whatsAppNumber, msg)
	log.WithFields(logrus.Fields{"booking_id": b.ID, "nights": stay.Nights, "total": quote.Total}).Info("booking created")

	s.notify(ctx, villa, b, stay, req.Guests, ref)
	return &Confirmation{Booking: b, Quote: quote, Reference: ref, WhatsAppURL: link}, nil
}

func (s *Service) notify(ctx context.Context, villa model.Villa, b model.Booking, stay Stay, guests int, ref string) {
	if s.notifier == nil {
		return
	}
	ev := queue.BookingCreatedEvent{
		BookingID:      b.ID,
		Reference:      ref,
		VillaID:        villa.ID,
		VillaName:      villa.Name,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Nights:         stay.Nights,
		Guests:         guests,
		TotalPrice:     b.TotalPrice,
		FormattedTotal: FormatIDR(b.TotalPrice),
		GuestName:      b.GuestName,
		GuestEmail:     b.GuestEmail,
		GuestPhone:     b.GuestWhatsApp,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
	}
	if b.SpecialRequest != nil {
		ev.SpecialRequest = *b.SpecialRequest
	}
	if err := s.notifier.BookingCreated(ctx, ev); err != nil {
		s.log.WithField("booking_id", b.ID).WithError(err).Warn("booking notification failed")
	}
}

func failure(err error) Result {
	res := Result{Success: false, Err: err}
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		res.Code = CodeValidation
		res.Field = ve.Field
		res.Error = ve.Message
	case errors.Is(err, ErrDatesOverlap):
		res.Code = CodeConflict
		res.Error = "the selected dates are no longer available, please choose different dates"
	case errors.Is(err, repository.ErrNotFound):
		res.Code = CodeNotFound
		res.Error = "villa not found"
	default:
		res.Code = CodeInfrastructure
		res.Error = "failed to process booking"
		if hint := repository.Describe(err); hint != "" {
			res.Error += ": " + hint
		}
	}
	return res
}

// BlockedDates returns the sorted, de-duplicated days a date picker must
// disable for the villa.
func (s *Service) BlockedDates(ctx context.Context, villaID string) ([]time.Time, error) {
	bookings, err := s.calendar.ListBookingsForVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}
	return UniqueDays(BlockedDates(bookings, s.log.WithField("villa_id", villaID))), nil
}

// Availability answers whether a stay could be booked right now.
type Availability struct {
	Available bool   `json:"available"`
	Quote     *Quote `json:"quote,omitempty"`
}

// CheckAvailability validates the range, applies the overlap test against
// the villa's current bookings and quotes the stay when it is free.
func (s *Service) CheckAvailability(ctx context.Context, villaID, startDate, endDate string) (Availability, error) {
	stay, err := ValidateStay(startDate, endDate)
	if err != nil {
		return Availability{}, err
	}
	villa, err := s.calendar.GetVilla(ctx, villaID)
	if err != nil {
		return Availability{}, err
	}
	existing, err := s.calendar.ListBookingsForVilla(ctx, villaID)
	if err != nil {
		return Availability{}, err
	}
	if _, clash := FindConflict(existing, stay.Start, stay.End); clash {
		return Availability{Available: false}, nil
	}
	q := NewQuote(stay.Nights, villa.PricePerNight)
	return Availability{Available: true, Quote: &q}, nil
}
