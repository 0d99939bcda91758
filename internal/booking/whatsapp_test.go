package booking

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func sampleMessage(special string) MessageData {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return MessageData{
		VillaName: "Royal Jungle Suite",
		Stay:      Stay{Start: start, End: start.AddDate(0, 0, 3), Nights: 3},
		Guests:    2,
		Total:     11_550_000,
		Guest: GuestContact{
			FullName:       "Ayu Lestari",
			Email:          "ayu@example.com",
			Phone:          "081234567890",
			SpecialRequest: special,
		},
		Reference: "A1B2C3D4",
	}
}

func TestComposeMessage(t *testing.T) {
	msg := ComposeMessage(sampleMessage(""))
	for _, want := range []string{
		"Villa: Royal Jungle Suite",
		"Check-in: 10/03/2026",
		"Check-out: 13/03/2026",
		"Nights: 3",
		"Guests: 2",
		"Total: Rp 11.550.000",
		"Booking reference: A1B2C3D4",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Special request") {
		t.Error("empty special request must be omitted")
	}
	if !strings.Contains(ComposeMessage(sampleMessage("honeymoon setup")), "Special request: honeymoon setup") {
		t.Error("special request line missing")
	}
}

func TestWhatsAppLink(t *testing.T) {
	msg := ComposeMessage(sampleMessage("flowers & cake"))
	link := WhatsAppLink("+62 812-3456-7890", msg)

	if !strings.HasPrefix(link, "https://wa.me/6281234567890?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatal("spaces must be encoded as %20, not +")
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	text := u.Query().Get("text")
	if text != msg {
		t.Fatalf("decoded text differs from message:\n%q\n%q", text, msg)
	}
	if !strings.Contains(text, "Royal Jungle Suite") || !strings.Contains(text, "Rp 11.550.000") {
		t.Fatalf("decoded text lacks villa or total: %s", text)
	}
}

func TestReferenceCode(t *testing.T) {
	if got := ReferenceCode("a1b2c3d4-e5f6-7890-abcd-ef0123456789"); got != "A1B2C3D4" {
		t.Fatalf("got %q", got)
	}
	if got := ReferenceCode("abc"); got != "ABC" {
		t.Fatalf("got %q", got)
	}
}
