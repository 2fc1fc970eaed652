package vend

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"snackspace/internal/domain"
)

const (
	defaultLogPage = 100
	maxLogPage     = 500
)

// Store runs the vending machine viewer queries.
type Store interface {
	VendConfig(ctx context.Context) (*domain.Report, error)
	VendLog(ctx context.Context, offset, limit int) (*domain.Report, error)
}

// Handler serves the read-only vending machine configuration and log
// viewer endpoints.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a vend handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Register mounts the vend routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/config", h.Config)
	g.GET("/log", h.Log)
}

// Config handles GET /api/vend/config: the position-to-product layout of
// every machine.
func (h *Handler) Config(c echo.Context) error {
	report, err := h.store.VendConfig(c.Request().Context())
	if err != nil {
		h.logger.Error("vend config query failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, report)
}

// Log handles GET /api/vend/log?offset=N&limit=N: a page of the vend
// transaction log, newest first.
func (h *Handler) Log(c echo.Context) error {
	offset := intParam(c, "offset", 0)
	limit := intParam(c, "limit", defaultLogPage)
	if offset < 0 || limit < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "offset and limit must be non-negative"})
	}
	if limit > maxLogPage {
		limit = maxLogPage
	}

	report, err := h.store.VendLog(c.Request().Context(), offset, limit)
	if err != nil {
		h.logger.Error("vend log query failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, report)
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
