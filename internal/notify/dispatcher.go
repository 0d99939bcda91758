package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/queue"
)

// Dispatcher turns a booking event into the guest confirmation email and an
// admin push.  Either channel may be nil.
type Dispatcher struct {
	mail EmailSender
	push Broadcaster
	log  logrus.FieldLogger
}

// NewDispatcher wires the channels.  Pass untyped nil for a disabled one.
func NewDispatcher(mail EmailSender, push Broadcaster, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{mail: mail, push: push, log: log}
}

// Handle delivers both notifications.  Failures are logged; Handle only
// returns an error for an event it cannot use at all, so a queue consumer
// does not retry messages whose side effects already happened.
func (d *Dispatcher) Handle(ctx context.Context, ev queue.BookingCreatedEvent) error {
	if ev.BookingID == "" {
		return fmt.Errorf("booking event without id")
	}
	log := d.log.WithFields(logrus.Fields{"booking_id": ev.BookingID, "villa_id": ev.VillaID})

	if d.mail != nil && ev.GuestEmail != "" {
		_, err := d.mail.Send(ctx, EmailRequest{
			To:   ev.GuestEmail,
			Type: EmailBookingConfirmation,
			Data: map[string]any{
				"guest_name": ev.GuestName,
				"villa_name": ev.VillaName,
				"reference":  ev.Reference,
				"check_in":   ev.StartDate,
				"check_out":  ev.EndDate,
				"nights":     ev.Nights,
				"guests":     ev.Guests,
				"total":      ev.FormattedTotal,
			},
		})
		if err != nil {
			log.WithError(err).Warn("booking confirmation email failed")
		}
	}

	if d.push != nil {
		res, err := d.push.Broadcast(ctx, Notification{
			Title: "New booking request " + ev.Reference,
			Body:  fmt.Sprintf("%s · %s → %s · %s", ev.VillaName, ev.StartDate, ev.EndDate, ev.FormattedTotal),
			URL:   "/admin/bookings",
			Tag:   ev.BookingID,
		})
		if err != nil {
			log.WithError(err).Warn("admin push failed")
		} else {
			log.WithFields(logrus.Fields{"sent": res.Sent, "pruned": res.Pruned, "failed": res.Failed}).Debug("admin push delivered")
		}
	}
	return nil
}

// Direct is the notifier used when no broker is configured: it runs the
// dispatcher in a background goroutine bounded by Timeout.
type Direct struct {
	d       *Dispatcher
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDirect returns a Direct notifier.  timeout <= 0 means 30 seconds.
func NewDirect(d *Dispatcher, timeout time.Duration) *Direct {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Direct{d: d, timeout: timeout}
}

// BookingCreated schedules delivery and returns immediately.  The request
// context is detached so a finished HTTP request does not cancel delivery.
func (n *Direct) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()
		_ = n.d.Handle(ctx, ev)
	}()
	return nil
}

// Wait blocks until every scheduled delivery has finished.
func (n *Direct) Wait() { n.wg.Wait() }
