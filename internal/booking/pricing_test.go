package booking

import (
	"testing"
	"time"
)

func TestNewQuote(t *testing.T) {
	cases := []struct {
		nights int
		rate   int64
		want   int64
	}{
		{3, 3_500_000, 11_550_000},
		{1, 2_000_000, 2_200_000},
		{1, 5, 6}, // 5.5 rounds half up
		{2, 0, 0},
	}
	for _, tc := range cases {
		q := NewQuote(tc.nights, tc.rate)
		if q.Total != tc.want {
			t.Errorf("NewQuote(%d, %d).Total = %d, want %d", tc.nights, tc.rate, q.Total, tc.want)
		}
		if q.Subtotal+q.ServiceFee != q.Total {
			t.Errorf("subtotal %d + fee %d != total %d", q.Subtotal, q.ServiceFee, q.Total)
		}
	}
}

func TestNights(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if n := Nights(start, start.AddDate(0, 0, 3)); n != 3 {
		t.Fatalf("got %d nights", n)
	}
	if n := Nights(start, start); n != 0 {
		t.Fatalf("same day should be 0 nights, got %d", n)
	}
	if n := Nights(start, start.AddDate(0, 0, -2)); n != -2 {
		t.Fatalf("reversed range should be negative, got %d", n)
	}
}

func TestFormatIDR(t *testing.T) {
	cases := map[int64]string{
		11_550_000: "Rp 11.550.000",
		0:          "Rp 0",
		999:        "Rp 999",
		1_000:      "Rp 1.000",
	}
	for in, want := range cases {
		if got := FormatIDR(in); got != want {
			t.Errorf("FormatIDR(%d) = %q, want %q", in, got, want)
		}
		back, err := ParseIDR(want)
		if err != nil || back != in {
			t.Errorf("ParseIDR(%q) = %d, %v", want, back, err)
		}
	}
	if _, err := ParseIDR("Rp abc"); err == nil {
		t.Error("expected error for junk input")
	}
}
