package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/bali-villa-booking/internal/config"
	"github.com/iliyamo/bali-villa-booking/internal/logging"
	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/queue"
)

type fakeDialer struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, m...)
	return d.err
}

func TestRenderBookingConfirmation(t *testing.T) {
	subject, body, err := Render(EmailRequest{Type: EmailBookingConfirmation, Data: map[string]any{
		"guest_name": "Ayu <script>",
		"villa_name": "Royal Jungle Suite",
		"reference":  "A1B2C3D4",
		"total":      "Rp 11.550.000",
	}})
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Booking request received: Royal Jungle Suite (A1B2C3D4)" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Rp 11.550.000") || strings.Contains(body, "<script>") {
		t.Fatalf("unexpected body: %s", body)
	}
	if _, _, err := Render(EmailRequest{Type: "newsletter"}); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestMailerSend(t *testing.T) {
	d := &fakeDialer{}
	m := newMailer("Bali Villas <reservations@balivillas.example>", d, logging.Discard())

	id, err := m.Send(context.Background(), EmailRequest{To: "guest@example.com", Type: EmailInquiryReceived})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(id, "@balivillas.example>") {
		t.Fatalf("unexpected message id %q", id)
	}
	if len(d.sent) != 1 || d.sent[0].GetHeader("To")[0] != "guest@example.com" {
		t.Fatalf("unexpected sent messages %v", d.sent)
	}

	if _, err := m.Send(context.Background(), EmailRequest{To: "nobody", Type: EmailInquiryReceived}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	d.err = errors.New("535 auth failed")
	if _, err := m.Send(context.Background(), EmailRequest{To: "a@b.c", Type: EmailInquiryReceived}); err == nil {
		t.Fatal("expected smtp error")
	}

	var disabled *Mailer
	if _, err := disabled.Send(context.Background(), EmailRequest{}); !errors.Is(err, ErrMailDisabled) {
		t.Fatalf("expected ErrMailDisabled, got %v", err)
	}
	if NewMailer(config.SMTPConfig{}, logging.Discard()) != nil {
		t.Fatal("mailer without host must be nil")
	}
}

type memPushStore struct {
	subs    map[string]model.PushSubscription
	deleted []string
}

func (s *memPushStore) Upsert(_ context.Context, p model.PushSubscription) error {
	s.subs[p.Endpoint] = p
	return nil
}

func (s *memPushStore) List(context.Context) ([]model.PushSubscription, error) {
	out := []model.PushSubscription{}
	for _, p := range s.subs {
		out = append(out, p)
	}
	return out, nil
}

func (s *memPushStore) Delete(_ context.Context, endpoint string) error {
	delete(s.subs, endpoint)
	s.deleted = append(s.deleted, endpoint)
	return nil
}

func TestPusherBroadcastPrunesGone(t *testing.T) {
	store := &memPushStore{subs: map[string]model.PushSubscription{}}
	p := NewPusher(store, config.PushConfig{PublicKey: "pub", PrivateKey: "priv", Subject: "mailto:a@b.c"}, logging.Discard())
	p.send = func(_ context.Context, msg []byte, s *webpush.Subscription, o *webpush.Options) (*http.Response, error) {
		status := http.StatusCreated
		switch {
		case strings.HasSuffix(s.Endpoint, "/gone"):
			status = http.StatusGone
		case strings.HasSuffix(s.Endpoint, "/missing"):
			status = http.StatusNotFound
		case strings.HasSuffix(s.Endpoint, "/broken"):
			return nil, errors.New("tls handshake timeout")
		}
		if o.VAPIDPublicKey != "pub" || !strings.Contains(string(msg), "New booking") {
			t.Errorf("unexpected options or payload: %+v %s", o, msg)
		}
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}, nil
	}

	for _, ep := range []string{"https://push.example/ok", "https://push.example/gone", "https://push.example/missing", "https://push.example/broken"} {
		if err := p.Subscribe(context.Background(), model.PushSubscription{Endpoint: ep, Keys: model.PushKeys{P256dh: "k", Auth: "a"}}); err != nil {
			t.Fatal(err)
		}
	}
	res, err := p.Broadcast(context.Background(), Notification{Title: "New booking"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 1 || res.Pruned != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(store.subs) != 2 || len(store.deleted) != 2 {
		t.Fatalf("gone endpoints not pruned: %v", store.deleted)
	}
	if err := p.Subscribe(context.Background(), model.PushSubscription{Endpoint: "x"}); !errors.Is(err, ErrIncompleteSubscription) {
		t.Fatalf("expected ErrIncompleteSubscription, got %v", err)
	}
}

type recordingMail struct {
	mu   sync.Mutex
	reqs []EmailRequest
	err  error
}

func (r *recordingMail) Send(_ context.Context, req EmailRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return "<id@x>", r.err
}

type recordingPush struct {
	mu  sync.Mutex
	got []Notification
	err error
}

func (r *recordingPush) Broadcast(_ context.Context, n Notification) (BroadcastResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return BroadcastResult{Sent: 1}, r.err
}

func event() queue.BookingCreatedEvent {
	return queue.BookingCreatedEvent{
		BookingID: "b1", Reference: "B1", VillaID: "v1", VillaName: "Royal Jungle Suite",
		StartDate: "2026-03-10", EndDate: "2026-03-13", Nights: 3, Guests: 2,
		FormattedTotal: "Rp 11.550.000", GuestName: "Ayu", GuestEmail: "ayu@example.com",
	}
}

func TestDispatcherSwallowsChannelErrors(t *testing.T) {
	mail := &recordingMail{err: errors.New("smtp down")}
	push := &recordingPush{err: errors.New("push down")}
	d := NewDispatcher(mail, push, logging.Discard())

	if err := d.Handle(context.Background(), event()); err != nil {
		t.Fatalf("channel failures must not surface: %v", err)
	}
	if len(mail.reqs) != 1 || mail.reqs[0].Type != EmailBookingConfirmation || mail.reqs[0].To != "ayu@example.com" {
		t.Fatalf("unexpected email %+v", mail.reqs)
	}
	if len(push.got) != 1 || !strings.Contains(push.got[0].Title, "B1") {
		t.Fatalf("unexpected push %+v", push.got)
	}
	if err := d.Handle(context.Background(), queue.BookingCreatedEvent{}); err == nil {
		t.Fatal("event without id must be rejected")
	}
}

func TestDirectRunsInBackground(t *testing.T) {
	mail := &recordingMail{}
	n := NewDirect(NewDispatcher(mail, nil, logging.Discard()), 0)

	ctx, cancel := context.WithCancel(context.Background())
	if err := n.BookingCreated(ctx, event()); err != nil {
		t.Fatal(err)
	}
	cancel()
	n.Wait()
	if len(mail.reqs) != 1 {
		t.Fatalf("expected one email after Wait, got %d", len(mail.reqs))
	}
}
