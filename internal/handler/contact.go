package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/datasource"
	"github.com/iliyamo/bali-villa-booking/internal/notify"
)

// ContactHandler serves newsletter sign-up and the transactional email
// endpoint.
type ContactHandler struct {
	Source datasource.Source
	Mail   notify.EmailSender // nil when SMTP is not configured
	Log    logrus.FieldLogger
}

func NewContactHandler(src datasource.Source, mail notify.EmailSender, log logrus.FieldLogger) *ContactHandler {
	return &ContactHandler{Source: src, Mail: mail, Log: log}
}

type subscribeReq struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/subscribe.  Subscribing twice succeeds.
func (h *ContactHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "please enter a valid email address", "field": "email"})
	}
	created, err := h.Source.Subscribe(c.Request().Context(), email)
	if err != nil {
		h.Log.WithError(err).Error("subscribe failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not subscribe right now, please try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "new": created})
}

// SendEmail handles POST /api/email with {to, type, data} and answers
// {success, messageId} or {error}.
func (h *ContactHandler) SendEmail(c echo.Context) error {
	if h.Mail == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": notify.ErrMailDisabled.Error()})
	}
	var req notify.EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	id, err := h.Mail.Send(ctx, req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "messageId": id})
	case errors.Is(err, notify.ErrInvalidEmail), errors.Is(err, notify.ErrUnknownTemplate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		h.Log.WithError(err).WithField("type", req.Type).Error("email send failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to send email"})
	}
}
