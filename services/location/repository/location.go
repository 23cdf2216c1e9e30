package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/database"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/internal/utils"
	"github.com/dkurush/fleetops/services/location"
)

type locationRepo struct {
	redisClient *database.RedisClient
	db          *sqlx.DB
}

// NewLocationRepository creates a new location repository. Current
// slots live in Redis; track points and route assignments in Postgres.
func NewLocationRepository(redisClient *database.RedisClient, db *sqlx.DB) location.LocationRepo {
	return &locationRepo{
		redisClient: redisClient,
		db:          db,
	}
}

// UpdateCurrentLocation overwrites the driver's current-position slot.
// Slots carry no TTL: a driver that goes offline stays visible as
// last known position rather than disappearing.
func (r *locationRepo) UpdateCurrentLocation(ctx context.Context, sample *models.LocationSample) error {
	locationKey := fmt.Sprintf(constants.KeyDriverLocation, sample.DriverID)
	locationData := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(sample.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(sample.Longitude, 'f', -1, 64),
		constants.FieldTimestamp: strconv.FormatInt(sample.CapturedAt.Unix(), 10),
	}

	if err := r.redisClient.HMSet(ctx, locationKey, locationData); err != nil {
		return fmt.Errorf("failed to store current location: %w", err)
	}

	if err := r.redisClient.SAdd(ctx, constants.KeyDriverIndex, sample.DriverID); err != nil {
		return fmt.Errorf("failed to index driver location: %w", err)
	}

	if err := r.redisClient.GeoAdd(ctx, constants.KeyDriverGeo, sample.Longitude, sample.Latitude, sample.DriverID); err != nil {
		return fmt.Errorf("failed to update driver geo set: %w", err)
	}

	return nil
}

// GetCurrentLocation reads the driver's current-position slot
func (r *locationRepo) GetCurrentLocation(ctx context.Context, driverID string) (*models.LocationSample, error) {
	locationKey := fmt.Sprintf(constants.KeyDriverLocation, driverID)

	values, err := r.redisClient.HMGet(ctx, locationKey,
		constants.FieldLatitude,
		constants.FieldLongitude,
		constants.FieldTimestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get location data: %w", err)
	}

	sample, err := parseSlot(driverID, values)
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// ListCurrentLocations returns every driver's current-position slot.
// This is the collection-snapshot fallback used to bootstrap an
// aggregator before its change-feed subscription takes over.
func (r *locationRepo) ListCurrentLocations(ctx context.Context) ([]*models.LocationSample, error) {
	driverIDs, err := r.redisClient.SMembers(ctx, constants.KeyDriverIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked drivers: %w", err)
	}

	samples := make([]*models.LocationSample, 0, len(driverIDs))
	for _, driverID := range driverIDs {
		sample, err := r.GetCurrentLocation(ctx, driverID)
		if err != nil {
			// A partially written slot is skipped, not fatal; the next
			// publish repairs it.
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseSlot(driverID string, values []string) (*models.LocationSample, error) {
	if len(values) != 3 || values[0] == "" || values[1] == "" {
		return nil, fmt.Errorf("no location data found for driver %s", driverID)
	}

	lat, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}

	lng, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}

	ts, err := strconv.ParseInt(values[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	return &models.LocationSample{
		DriverID:   driverID,
		Latitude:   lat,
		Longitude:  lng,
		CapturedAt: time.Unix(ts, 0).UTC(),
	}, nil
}

// AppendTrackPoint appends one point to a route's ordered track
func (r *locationRepo) AppendTrackPoint(ctx context.Context, point *models.TrackPoint) error {
	query := `
		INSERT INTO track_points (driver_id, route_id, latitude, longitude, captured_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		point.DriverID,
		point.RouteID,
		point.Latitude,
		point.Longitude,
		point.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append track point: %w", err)
	}
	return nil
}

// GetRouteTrack returns a route's track points in capture order
func (r *locationRepo) GetRouteTrack(ctx context.Context, driverID, routeID string) ([]*models.TrackPoint, error) {
	query := `
		SELECT driver_id, route_id, latitude, longitude, captured_at
		FROM track_points
		WHERE driver_id = $1 AND route_id = $2
		ORDER BY captured_at ASC
	`

	var points []*models.TrackPoint
	if err := r.db.SelectContext(ctx, &points, query, driverID, routeID); err != nil {
		return nil, fmt.Errorf("failed to get route track: %w", err)
	}
	return points, nil
}

// UpsertRouteAssignment records the driver's active route and last
// known location while the route is active
func (r *locationRepo) UpsertRouteAssignment(ctx context.Context, assignment *models.RouteAssignment) error {
	query := `
		INSERT INTO route_assignments (driver_id, active_route_id, last_latitude, last_longitude, last_seen_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (driver_id) DO UPDATE SET
			active_route_id = EXCLUDED.active_route_id,
			last_latitude = EXCLUDED.last_latitude,
			last_longitude = EXCLUDED.last_longitude,
			last_seen_at = EXCLUDED.last_seen_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.DriverID,
		assignment.ActiveRouteID,
		assignment.LastLatitude,
		assignment.LastLongitude,
		assignment.LastSeenAt,
		assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert route assignment: %w", err)
	}
	return nil
}

// ClearRouteAssignment removes the driver's active route marker
func (r *locationRepo) ClearRouteAssignment(ctx context.Context, driverID string) error {
	query := `DELETE FROM route_assignments WHERE driver_id = $1`

	_, err := r.db.ExecContext(ctx, query, driverID)
	if err != nil {
		return fmt.Errorf("failed to clear route assignment: %w", err)
	}
	return nil
}

// GetDriverProfiles returns every driver profile for roster decoration
func (r *locationRepo) GetDriverProfiles(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, full_name, role, is_active, created_at
		FROM users
		WHERE role = 'driver'
	`

	var users []*models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get driver profiles: %w", err)
	}
	return users, nil
}

// GetNearbyDrivers finds drivers within radiusKm of a point using the
// Redis geo set
func (r *locationRepo) GetNearbyDrivers(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.RosterEntry, error) {
	results, err := r.redisClient.GeoRadius(ctx, constants.KeyDriverGeo, longitude, latitude, radiusKm, "km")
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby drivers: %w", err)
	}

	entries := make([]*models.RosterEntry, 0, len(results))
	for _, res := range results {
		entries = append(entries, &models.RosterEntry{
			DriverID:  res.Name,
			Latitude:  res.Latitude,
			Longitude: res.Longitude,
			Geohash:   utils.EncodePoint(res.Latitude, res.Longitude, utils.RosterGeohashPrecision),
		})
	}
	return entries, nil
}
