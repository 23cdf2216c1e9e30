package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/database"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/location"
)

// setupMiniredis creates a miniredis server and a client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, database.NewRedisClientFromClient(client)
}

func setupLocationRepoTest(t *testing.T) (location.LocationRepo, *miniredis.Miniredis, sqlmock.Sqlmock) {
	t.Helper()
	mr, redisClient := setupMiniredis(t)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "pgx")
	return NewLocationRepository(redisClient, sqlxDB), mr, mock
}

func TestUpdateAndGetCurrentLocation(t *testing.T) {
	repo, mr, _ := setupLocationRepoTest(t)
	ctx := context.Background()

	capturedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sample := &models.LocationSample{
		DriverID:   "driver-7",
		Latitude:   -6.175392,
		Longitude:  106.827153,
		CapturedAt: capturedAt,
	}

	require.NoError(t, repo.UpdateCurrentLocation(ctx, sample))

	// The slot is a plain hash with no TTL: an offline driver keeps a
	// last known position.
	key := fmt.Sprintf(constants.KeyDriverLocation, "driver-7")
	assert.Equal(t, time.Duration(0), mr.TTL(key))

	got, err := repo.GetCurrentLocation(ctx, "driver-7")
	require.NoError(t, err)
	assert.Equal(t, sample.Latitude, got.Latitude)
	assert.Equal(t, sample.Longitude, got.Longitude)
	assert.True(t, got.CapturedAt.Equal(capturedAt))

	// A subsequent write overwrites in place rather than appending.
	later := &models.LocationSample{
		DriverID:   "driver-7",
		Latitude:   -6.18,
		Longitude:  106.83,
		CapturedAt: capturedAt.Add(10 * time.Second),
	}
	require.NoError(t, repo.UpdateCurrentLocation(ctx, later))

	got, err = repo.GetCurrentLocation(ctx, "driver-7")
	require.NoError(t, err)
	assert.Equal(t, later.Latitude, got.Latitude)
}

func TestGetCurrentLocation_MissingSlot(t *testing.T) {
	repo, _, _ := setupLocationRepoTest(t)

	_, err := repo.GetCurrentLocation(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestListCurrentLocations(t *testing.T) {
	repo, mr, _ := setupLocationRepoTest(t)
	ctx := context.Background()

	capturedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, driverID := range []string{"driver-1", "driver-2"} {
		require.NoError(t, repo.UpdateCurrentLocation(ctx, &models.LocationSample{
			DriverID:   driverID,
			Latitude:   -6.2 + float64(i)*0.01,
			Longitude:  106.8,
			CapturedAt: capturedAt,
		}))
	}

	// A corrupt slot must be skipped, not fail the whole snapshot.
	mr.SAdd(constants.KeyDriverIndex, "driver-3")
	mr.HSet(fmt.Sprintf(constants.KeyDriverLocation, "driver-3"), constants.FieldLatitude, "not-a-number")

	samples, err := repo.ListCurrentLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestGetNearbyDrivers(t *testing.T) {
	repo, _, _ := setupLocationRepoTest(t)
	ctx := context.Background()

	capturedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateCurrentLocation(ctx, &models.LocationSample{
		DriverID:   "near",
		Latitude:   -6.1753,
		Longitude:  106.8271,
		CapturedAt: capturedAt,
	}))
	require.NoError(t, repo.UpdateCurrentLocation(ctx, &models.LocationSample{
		DriverID:   "far",
		Latitude:   -7.8,
		Longitude:  110.4,
		CapturedAt: capturedAt,
	}))

	entries, err := repo.GetNearbyDrivers(ctx, -6.1751, 106.8270, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "near", entries[0].DriverID)
	assert.NotEmpty(t, entries[0].Geohash)
}

func TestAppendTrackPointAndGetRouteTrack(t *testing.T) {
	repo, _, mock := setupLocationRepoTest(t)
	ctx := context.Background()

	capturedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	point := &models.TrackPoint{
		DriverID:   "driver-7",
		RouteID:    "route-9",
		Latitude:   -6.2,
		Longitude:  106.8,
		CapturedAt: capturedAt,
	}

	mock.ExpectExec("INSERT INTO track_points").
		WithArgs(point.DriverID, point.RouteID, point.Latitude, point.Longitude, point.CapturedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.AppendTrackPoint(ctx, point))

	rows := sqlmock.NewRows([]string{"driver_id", "route_id", "latitude", "longitude", "captured_at"}).
		AddRow("driver-7", "route-9", -6.2, 106.8, capturedAt).
		AddRow("driver-7", "route-9", -6.21, 106.81, capturedAt.Add(10*time.Second))
	mock.ExpectQuery("SELECT .+ FROM track_points .+ ORDER BY captured_at ASC").
		WithArgs("driver-7", "route-9").
		WillReturnRows(rows)

	track, err := repo.GetRouteTrack(ctx, "driver-7", "route-9")
	require.NoError(t, err)
	require.Len(t, track, 2)
	assert.True(t, track[0].CapturedAt.Before(track[1].CapturedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteAssignmentLifecycle(t *testing.T) {
	repo, _, mock := setupLocationRepoTest(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assignment := &models.RouteAssignment{
		DriverID:      "driver-7",
		ActiveRouteID: "route-9",
		LastLatitude:  -6.2,
		LastLongitude: 106.8,
		LastSeenAt:    now,
		UpdatedAt:     now,
	}

	mock.ExpectExec("INSERT INTO route_assignments").
		WithArgs(assignment.DriverID, assignment.ActiveRouteID, assignment.LastLatitude, assignment.LastLongitude, assignment.LastSeenAt, assignment.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.UpsertRouteAssignment(ctx, assignment))

	mock.ExpectExec("DELETE FROM route_assignments").
		WithArgs("driver-7").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ClearRouteAssignment(ctx, "driver-7"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDriverProfiles(t *testing.T) {
	repo, _, mock := setupLocationRepoTest(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "full_name", "role", "is_active", "created_at"}).
		AddRow("driver-7", "Ari Wibowo", "driver", true, now)
	mock.ExpectQuery("SELECT .+ FROM users WHERE role").
		WillReturnRows(rows)

	users, err := repo.GetDriverProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ari Wibowo", users[0].FullName)

	mock.ExpectQuery("SELECT .+ FROM users WHERE role").
		WillReturnError(errors.New("database error"))
	_, err = repo.GetDriverProfiles(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
