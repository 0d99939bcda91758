package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHandleDelivery(t *testing.T) {
	var got BookingCreatedEvent
	record := func(_ context.Context, ev BookingCreatedEvent) error {
		got = ev
		return nil
	}

	body := []byte(`{"booking_id":"b-1","reference":"B1","villa_id":"royal-jungle-suite","nights":3,"total_price":11550000}`)
	if err := HandleDelivery(context.Background(), body, record); err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if got.BookingID != "b-1" || got.Nights != 3 || got.TotalPrice != 11550000 {
		t.Fatalf("event = %+v", got)
	}

	cases := []struct {
		name string
		body string
	}{
		{"not json", `booking`},
		{"no id", `{"villa_id":"royal-jungle-suite"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			err := HandleDelivery(context.Background(), []byte(tc.body), func(context.Context, BookingCreatedEvent) error {
				called = true
				return nil
			})
			if err == nil || called {
				t.Fatalf("err = %v, called = %v", err, called)
			}
		})
	}

	boom := errors.New("boom")
	if err := HandleDelivery(context.Background(), body, func(context.Context, BookingCreatedEvent) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestSleepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sleep(ctx, time.Hour) {
		t.Fatal("sleep ignored cancellation")
	}
}
