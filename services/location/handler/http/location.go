package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dkurush/fleetops/services/location"
	"github.com/dkurush/fleetops/services/location/usecase"
)

// LocationHandler serves the dispatcher-facing read endpoints
type LocationHandler struct {
	aggregator *usecase.Aggregator
	repo       location.LocationRepo
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(aggregator *usecase.Aggregator, repo location.LocationRepo) *LocationHandler {
	return &LocationHandler{
		aggregator: aggregator,
		repo:       repo,
	}
}

// RegisterRoutes registers the location endpoints
func (h *LocationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/locations", h.GetRoster)
	e.GET("/drivers/nearby", h.GetNearbyDrivers)
	e.GET("/drivers/:id/location", h.GetDriverLocation)
	e.GET("/drivers/:id/routes/:route_id/track", h.GetRouteTrack)
}

// GetRoster returns the live roster of all drivers' latest positions
func (h *LocationHandler) GetRoster(c echo.Context) error {
	return c.JSON(http.StatusOK, h.aggregator.Roster())
}

// GetDriverLocation returns one driver's roster entry
func (h *LocationHandler) GetDriverLocation(c echo.Context) error {
	driverID := c.Param("id")

	entry, ok := h.aggregator.Entry(driverID)
	if !ok {
		// Fall back to the store in case this aggregator started after
		// the driver's last publish.
		sample, err := h.repo.GetCurrentLocation(c.Request().Context(), driverID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "no location for driver")
		}
		return c.JSON(http.StatusOK, sample)
	}
	return c.JSON(http.StatusOK, entry)
}

// GetNearbyDrivers returns drivers within radius_km of the given point
func (h *LocationHandler) GetNearbyDrivers(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude is required")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "longitude is required")
	}
	radiusKm := 1.0
	if raw := c.QueryParam("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "radius_km must be a positive number")
		}
	}

	entries, err := h.aggregator.NearbyDrivers(c.Request().Context(), lat, lng, radiusKm)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to query nearby drivers")
	}
	return c.JSON(http.StatusOK, entries)
}

// GetRouteTrack returns a route's recorded track in capture order
func (h *LocationHandler) GetRouteTrack(c echo.Context) error {
	points, err := h.repo.GetRouteTrack(c.Request().Context(), c.Param("id"), c.Param("route_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load route track")
	}
	return c.JSON(http.StatusOK, points)
}
