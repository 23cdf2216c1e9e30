package location

import (
	"context"

	"github.com/dkurush/fleetops/internal/pkg/models"
)

// LocationGW defines the interface for location change-feed publishing
type LocationGW interface {
	PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error
	PublishTrackPoint(ctx context.Context, point *models.TrackPoint) error
	PublishRouteEnded(ctx context.Context, driverID, routeID string) error
}
