package location

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// LocationRepo defines the interface for location data access operations
type LocationRepo interface {
	// Current-position slot: one per driver, overwritten in place
	UpdateCurrentLocation(ctx context.Context, sample *models.LocationSample) error
	GetCurrentLocation(ctx context.Context, driverID string) (*models.LocationSample, error)
	ListCurrentLocations(ctx context.Context) ([]*models.LocationSample, error)

	// Route tracking
	AppendTrackPoint(ctx context.Context, point *models.TrackPoint) error
	GetRouteTrack(ctx context.Context, driverID, routeID string) ([]*models.TrackPoint, error)
	UpsertRouteAssignment(ctx context.Context, assignment *models.RouteAssignment) error
	ClearRouteAssignment(ctx context.Context, driverID string) error

	// Roster decoration and geo queries
	GetDriverProfiles(ctx context.Context) ([]*models.User, error)
	GetNearbyDrivers(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.RosterEntry, error)
}
