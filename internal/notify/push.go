package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/config"
	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// PushStore is the persistence the pusher needs.
type PushStore interface {
	Upsert(ctx context.Context, s model.PushSubscription) error
	List(ctx context.Context) ([]model.PushSubscription, error)
	Delete(ctx context.Context, endpoint string) error
}

// ErrPushDisabled is returned by a nil *Pusher.
var ErrPushDisabled = errors.New("web push is not configured")

// Notification is the JSON payload delivered to the service worker.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// BroadcastResult counts the outcome of a fan-out.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Pruned int `json:"pruned"`
	Failed int `json:"failed"`
}

// Broadcaster is implemented by *Pusher.
type Broadcaster interface {
	Broadcast(ctx context.Context, n Notification) (BroadcastResult, error)
}

type sendFunc func(ctx context.Context, msg []byte, s *webpush.Subscription, o *webpush.Options) (*http.Response, error)

// Pusher fans notifications out to every stored admin subscription.
type Pusher struct {
	store PushStore
	cfg   config.PushConfig
	send  sendFunc
	http  *http.Client
	log   logrus.FieldLogger
}

// NewPusher returns nil when no VAPID key pair is configured.
func NewPusher(store PushStore, cfg config.PushConfig, log logrus.FieldLogger) *Pusher {
	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil
	}
	return &Pusher{
		store: store,
		cfg:   cfg,
		send:  webpush.SendNotificationWithContext,
		http:  &http.Client{Timeout: 10 * time.Second},
		log:   log,
	}
}

// ErrIncompleteSubscription rejects subscriptions without endpoint or keys.
var ErrIncompleteSubscription = errors.New("incomplete push subscription")

// Subscribe stores or refreshes a browser subscription.
func (p *Pusher) Subscribe(ctx context.Context, s model.PushSubscription) error {
	if s.Endpoint == "" || s.Keys.P256dh == "" || s.Keys.Auth == "" {
		return ErrIncompleteSubscription
	}
	return p.store.Upsert(ctx, s)
}

// Broadcast sends n to every subscription.  Endpoints answering 404 or 410
// are gone for good and are deleted.  Other failures are counted and
// logged.
func (p *Pusher) Broadcast(ctx context.Context, n Notification) (BroadcastResult, error) {
	var res BroadcastResult
	if p == nil {
		return res, ErrPushDisabled
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return res, err
	}
	subs, err := p.store.List(ctx)
	if err != nil {
		return res, err
	}
	opts := &webpush.Options{
		HTTPClient:      p.http,
		Subscriber:      p.cfg.Subject,
		TTL:             3600,
		VAPIDPublicKey:  p.cfg.PublicKey,
		VAPIDPrivateKey: p.cfg.PrivateKey,
	}
	for _, s := range subs {
		log := p.log.WithField("endpoint", s.Endpoint)
		resp, err := p.send(ctx, payload, &webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys:     webpush.Keys{Auth: s.Keys.Auth, P256dh: s.Keys.P256dh},
		}, opts)
		if err != nil {
			res.Failed++
			log.WithError(err).Warn("push send failed")
			continue
		}
		status := resp.StatusCode
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		switch {
		case status == http.StatusNotFound || status == http.StatusGone:
			if err := p.store.Delete(ctx, s.Endpoint); err != nil {
				log.WithError(err).Warn("prune push subscription failed")
			}
			res.Pruned++
		case status >= 200 && status < 300:
			res.Sent++
		default:
			res.Failed++
			log.WithField("status", status).Warn("push service rejected notification")
		}
	}
	return res, nil
}
