package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Handler serves the collect endpoint and the admin summary.
type Handler struct {
	store   *Store
	limiter *rateLimiter
}

// NewHandler creates a Handler over the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:   store,
		limiter: newRateLimiter(30, time.Minute),
	}
}

// CollectRequest is the beacon payload sent by pages.
type CollectRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// Collect records a page view. Invalid payloads and rate-limited clients
// are answered with 204 as well; a beacon endpoint has nothing useful to
// say to the sender.
func (h *Handler) Collect(c echo.Context) error {
	if !h.limiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusNoContent)
	}

	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	if !strings.HasPrefix(req.Path, "/") || len(req.Path) > 512 {
		return c.NoContent(http.StatusNoContent)
	}

	visit := Visit{
		VisitorID: VisitorID(c.RealIP(), c.Request().UserAgent()),
		Path:      req.Path,
		Referrer:  CleanReferrer(req.Referrer, c.Request().Host),
		Timestamp: time.Now(),
	}
	if err := h.store.SaveVisit(visit); err != nil {
		log.Error().Err(err).Str("path", req.Path).Msg("save visit")
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary returns aggregated view counts for the last N days (default 30).
func (h *Handler) Summary(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	sum, err := h.store.GetSummary(from, to, 20)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
