package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/notify"
)

// PushService is implemented by *notify.Pusher.
type PushService interface {
	Subscribe(ctx context.Context, s model.PushSubscription) error
	notify.Broadcaster
}

// PushHandler registers admin browsers and sends manual notifications.
type PushHandler struct {
	Push PushService // nil when VAPID keys are not configured
	Log  logrus.FieldLogger
}

func NewPushHandler(p PushService, log logrus.FieldLogger) *PushHandler {
	return &PushHandler{Push: p, Log: log}
}

// Subscribe handles POST /api/admin/push/subscribe with a browser
// PushSubscription object.
func (h *PushHandler) Subscribe(c echo.Context) error {
	if h.Push == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": notify.ErrPushDisabled.Error()})
	}
	var sub model.PushSubscription
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	sub.Endpoint = strings.TrimSpace(sub.Endpoint)
	if sub.UserAgent == "" {
		sub.UserAgent = c.Request().UserAgent()
	}
	if err := h.Push.Subscribe(c.Request().Context(), sub); err != nil {
		if errors.Is(err, notify.ErrIncompleteSubscription) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.Log.WithError(err).Error("store push subscription failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save subscription"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// Send handles POST /api/admin/push/send and fans the notification out to
// every stored subscription.
func (h *PushHandler) Send(c echo.Context) error {
	if h.Push == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": notify.ErrPushDisabled.Error()})
	}
	var n notify.Notification
	if err := c.Bind(&n); err != nil || strings.TrimSpace(n.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	res, err := h.Push.Broadcast(c.Request().Context(), n)
	if err != nil {
		h.Log.WithError(err).Error("push broadcast failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send notification"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "sent": res.Sent, "pruned": res.Pruned, "failed": res.Failed})
}
