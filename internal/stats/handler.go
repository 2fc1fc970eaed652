package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"snackspace/internal/domain"
	"snackspace/internal/mysql"
)

// Store runs the read-only report queries.
type Store interface {
	Report(ctx context.Context, query string, args ...any) (*domain.Report, error)
}

// Handler serves the statistics reports. Results are expensive to compute
// and change slowly, so responses carry a 12 hour cache lifetime, as the
// original endpoints did.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a stats handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Register mounts the report routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/snackspace-monthly", h.report("snackspace_monthly", mysql.SnackspaceMonthlySQL))
	g.GET("/vend-sales", h.report("vend_sales", mysql.VendSalesSQL))
	g.GET("/vend-stock", h.report("vend_stock", mysql.VendStockSQL))
	g.GET("/member-stats", h.report("member_stats", mysql.MemberStatsSQL))
	g.GET("/laser-usage", h.report("laser_usage", mysql.LaserUsageSQL))
}

func (h *Handler) report(name, query string) echo.HandlerFunc {
	return func(c echo.Context) error {
		report, err := h.store.Report(c.Request().Context(), query)
		if err != nil {
			h.logger.Error("report query failed", "report", name, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "report query failed"})
		}

		hdr := c.Response().Header()
		hdr.Set("Cache-Control", "max-age=43200")
		hdr.Set("Access-Control-Allow-Origin", "*")
		return c.JSON(http.StatusOK, report)
	}
}
