package booking

import (
	"errors"
	"testing"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

func validRequest() Request {
	return Request{
		VillaID:   "villa-1",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-13",
		Guests:    2,
		Guest: model.GuestDetails{
			FullName: "Ayu Lestari",
			Email:    "Ayu@Example.com ",
			Phone:    "+62 812 3456 7890",
		},
	}
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"ok", func(*Request) {}, ""},
		{"bad start", func(r *Request) { r.StartDate = "soon" }, "start_date"},
		{"bad end", func(r *Request) { r.EndDate = "" }, "end_date"},
		{"zero nights", func(r *Request) { r.EndDate = r.StartDate }, "end_date"},
		{"negative nights", func(r *Request) { r.EndDate = "2026-03-01" }, "end_date"},
		{"no villa", func(r *Request) { r.VillaID = "  " }, "villa_id"},
		{"no guests", func(r *Request) { r.Guests = 0 }, "guests"},
		{"short name", func(r *Request) { r.Guest.FullName = "Al" }, "guest.full_name"},
		{"email without at", func(r *Request) { r.Guest.Email = "ayu.example.com" }, "guest.email"},
		{"short phone", func(r *Request) { r.Guest.Phone = "1234" }, "guest.phone"},
		{"dates checked before guest", func(r *Request) { r.EndDate = r.StartDate; r.Guest.FullName = "" }, "end_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			stay, err := ValidateRequest(req)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if stay.Nights != 3 {
					t.Fatalf("nights = %d, want 3", stay.Nights)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Fatalf("field = %q, want %q (%s)", ve.Field, tc.wantField, ve.Message)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatal("ValidationError must match ErrValidation")
			}
		})
	}
}

func TestValidateGuest(t *testing.T) {
	if err := ValidateGuest(validRequest().Guest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateGuest(model.GuestDetails{FullName: "Ayu Lestari", Phone: "081234567"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "guest.email" {
		t.Fatalf("expected guest.email error, got %v", err)
	}
}

func TestNormalizeGuest(t *testing.T) {
	g := NormalizeGuest(model.GuestDetails{FullName: "  Ayu ", Email: " AYU@EXAMPLE.COM", Phone: " 0812 ", SpecialRequest: " late check-in  "})
	if g.FullName != "Ayu" || g.Email != "ayu@example.com" || g.Phone != "0812" || g.SpecialRequest != "late check-in" {
		t.Fatalf("unexpected normalization: %+v", g)
	}
}
