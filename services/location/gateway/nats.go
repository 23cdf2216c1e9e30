package gateway

import (
	"context"
	"encoding/json"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	"github.com/dkurush/fleetops/services/location"
)

// LocationGW publishes location change-feed events to NATS
type LocationGW struct {
	natsClient *natspkg.Client
}

// NewLocationGW creates a new location gateway
func NewLocationGW(client *natspkg.Client) location.LocationGW {
	return &LocationGW{
		natsClient: client,
	}
}

// PublishLocationUpdate publishes a current-slot write to the change feed
func (g *LocationGW) PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectLocationUpdate, data)
}

// PublishTrackPoint publishes a track-point append for live route following
func (g *LocationGW) PublishTrackPoint(ctx context.Context, point *models.TrackPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectRouteTrack, data)
}

// PublishRouteEnded publishes a route-assignment clear
func (g *LocationGW) PublishRouteEnded(ctx context.Context, driverID, routeID string) error {
	data, err := json.Marshal(map[string]string{
		"driver_id": driverID,
		"route_id":  routeID,
	})
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectRouteEnded, data)
}
