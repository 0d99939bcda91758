package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bali-villa-booking/internal/handler"
)

func do(t *testing.T, e *echo.Echo, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", handler.Health)
	rec := do(t, e, http.MethodGet, "/healthz", "")
	wantStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "ok" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestStatus(t *testing.T) {
	e := echo.New()
	s := &handler.StatusHandler{Mode: "live", Circuit: func() string { return "closed" }}
	e.GET("/api/status", s.Status)

	var body map[string]string
	rec := do(t, e, http.MethodGet, "/api/status", "")
	wantStatus(t, rec, http.StatusOK)
	decode(t, rec, &body)
	if body["data_source"] != "live" || body["circuit"] != "closed" {
		t.Fatalf("body = %v", body)
	}
}
