package handlers

import (
	"net/http"
	"strconv"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/labstack/echo/v4"
)

const defaultProbeLimit = 20

// DebugHandler writes and reads diagnostic rows to check relational connectivity
type DebugHandler struct {
	probeRepository repositories.ProbeRepository
}

func NewDebugHandler(probeRepo repositories.ProbeRepository) *DebugHandler {
	return &DebugHandler{probeRepository: probeRepo}
}

// RegisterDebugRoutes registers the probe routes. Not mounted in production.
func (h *DebugHandler) RegisterDebugRoutes(g *echo.Group) {
	g.POST("/debug/probe", h.CreateProbe)
	g.GET("/debug/probe", h.ListProbes)
}

func (h *DebugHandler) CreateProbe(c echo.Context) error {
	var req models.CreateProbeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	probe := &models.Probe{Message: req.Message}
	if err := h.probeRepository.CreateProbe(c.Request().Context(), probe); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, probe)
}

func (h *DebugHandler) ListProbes(c echo.Context) error {
	limit := defaultProbeLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
		}
		limit = n
	}

	probes, err := h.probeRepository.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"probes": probes,
		"count":  len(probes),
	})
}
