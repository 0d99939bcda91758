package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bali-villa-booking/internal/catalog"
	"github.com/iliyamo/bali-villa-booking/internal/datasource"
	"github.com/iliyamo/bali-villa-booking/internal/repository"
)

// PublicHandler serves the read-only catalog and editorial content.
type PublicHandler struct {
	Source datasource.Source
	Log    logrus.FieldLogger
}

func NewPublicHandler(src datasource.Source, log logrus.FieldLogger) *PublicHandler {
	return &PublicHandler{Source: src, Log: log}
}

func (h *PublicHandler) fail(c echo.Context, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	h.Log.WithField("endpoint", op).WithError(err).Error("public read failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load " + op})
}

// ListVillas handles GET /api/villas.
func (h *PublicHandler) ListVillas(c echo.Context) error {
	villas, err := h.Source.ListVillas(c.Request().Context())
	if err != nil {
		return h.fail(c, "villas", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"villas": villas, "count": len(villas)})
}

// GetVilla handles GET /api/villas/:id and returns the villa with its
// presentation defaults filled in.
func (h *PublicHandler) GetVilla(c echo.Context) error {
	v, err := h.Source.GetVilla(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "villa", err)
	}
	return c.JSON(http.StatusOK, catalog.Details(v))
}

// MapMarkers handles GET /api/villas/map.  Villas without usable
// coordinates are left out.
func (h *PublicHandler) MapMarkers(c echo.Context) error {
	villas, err := h.Source.ListVillas(c.Request().Context())
	if err != nil {
		return h.fail(c, "villas", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"markers": catalog.MapMarkers(villas)})
}

// ListJournal handles GET /api/journal?limit=N.
func (h *PublicHandler) ListJournal(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}
	posts, err := h.Source.ListJournal(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, "journal", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// GetJournal handles GET /api/journal/:slug.
func (h *PublicHandler) GetJournal(c echo.Context) error {
	p, err := h.Source.JournalBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.fail(c, "journal post", err)
	}
	return c.JSON(http.StatusOK, p)
}

// ListExperiences handles GET /api/experiences.
func (h *PublicHandler) ListExperiences(c echo.Context) error {
	items, err := h.Source.ListExperiences(c.Request().Context())
	if err != nil {
		return h.fail(c, "experiences", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"experiences": items})
}

// ListReviews handles GET /api/reviews.
func (h *PublicHandler) ListReviews(c echo.Context) error {
	items, err := h.Source.ListReviews(c.Request().Context())
	if err != nil {
		return h.fail(c, "reviews", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": items})
}
