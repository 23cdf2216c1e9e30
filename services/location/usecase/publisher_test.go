package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/location/mocks"
	"github.com/dkurush/fleetops/services/location/sensor"
)

func waitForLastKnown(t *testing.T, p *Publisher, capturedAt time.Time) {
	t.Helper()
	require.Eventually(t, func() bool {
		last := p.LastKnown()
		return last != nil && last.CapturedAt.Equal(capturedAt)
	}, time.Second, time.Millisecond)
}

func waitForState(t *testing.T, p *Publisher, state PublisherState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return p.State() == state
	}, time.Second, time.Millisecond)
}

func TestPublisher_ThrottlesSensorSamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: 10 * time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)

	published := make(chan *models.LocationUpdate, 4)
	mockRepo.EXPECT().
		UpdateCurrentLocation(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update *models.LocationUpdate) error {
			published <- update
			return nil
		}).
		Times(2)

	require.NoError(t, p.Activate(context.Background()))

	// Samples arrive at t=0, 3, 7 and 12 seconds. Only the first and
	// the one past the 10 second interval reach the store.
	offsets := []time.Duration{0, 3 * time.Second, 7 * time.Second, 12 * time.Second}
	for i, offset := range offsets {
		clk.Set(base.Add(offset))
		capturedAt := base.Add(offset)
		feed.Push(sensor.Position{
			Latitude:   -6.2 + float64(i)*0.001,
			Longitude:  106.8,
			CapturedAt: capturedAt,
		})
		waitForLastKnown(t, p, capturedAt)
	}

	first := <-published
	second := <-published
	assert.Equal(t, base, first.CapturedAt)
	assert.Equal(t, base.Add(12*time.Second), second.CapturedAt)

	p.Deactivate()
	assert.Equal(t, 0, feed.ActiveWatches())
}

func TestPublisher_SkipsOutOfOrderSamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)

	published := make(chan *models.LocationUpdate, 4)
	mockRepo.EXPECT().
		UpdateCurrentLocation(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update *models.LocationUpdate) error {
			published <- update
			return nil
		}).
		Times(2)

	require.NoError(t, p.Activate(context.Background()))

	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	waitForLastKnown(t, p, base)

	// A stale capture time arrives after the interval elapsed. It must
	// not publish: capture times never run backwards in the store.
	clk.Advance(2 * time.Second)
	stale := base.Add(-5 * time.Second)
	feed.Push(sensor.Position{Latitude: -6.3, Longitude: 106.8, CapturedAt: stale})
	waitForLastKnown(t, p, stale)

	clk.Advance(2 * time.Second)
	next := base.Add(3 * time.Second)
	feed.Push(sensor.Position{Latitude: -6.4, Longitude: 106.8, CapturedAt: next})
	waitForLastKnown(t, p, next)

	first := <-published
	second := <-published
	assert.Equal(t, base, first.CapturedAt)
	assert.Equal(t, next, second.CapturedAt)

	p.Deactivate()
}

func TestPublisher_StalledWriteKeepsStoreOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: 10 * time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var stored []time.Time
	mockRepo.EXPECT().
		UpdateCurrentLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sample *models.LocationSample) error {
			if sample.CapturedAt.Equal(base) {
				close(firstStarted)
				<-release
			}
			mu.Lock()
			stored = append(stored, sample.CapturedAt)
			mu.Unlock()
			return nil
		}).
		Times(2)

	published := make(chan *models.LocationUpdate, 2)
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update *models.LocationUpdate) error {
			published <- update
			return nil
		}).
		Times(2)

	require.NoError(t, p.Activate(context.Background()))

	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	<-firstStarted

	// A second publish is accepted while the first store write is still
	// in flight. It must wait behind the stalled write; otherwise the
	// store would record capture times out of order.
	next := base.Add(12 * time.Second)
	clk.Set(next)
	feed.Push(sensor.Position{Latitude: -6.3, Longitude: 106.8, CapturedAt: next})
	waitForLastKnown(t, p, next)

	close(release)
	<-published
	<-published
	p.Deactivate()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, stored, 2)
	assert.Equal(t, base, stored[0])
	assert.Equal(t, next, stored[1])
}

func TestPublisher_PermissionDeniedIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)
	require.NoError(t, p.Activate(context.Background()))

	feed.Fail(sensor.Failure{Code: sensor.PermissionDenied, Message: "denied by user"})
	waitForState(t, p, StateError)

	// The watch is released and no store write may happen again until
	// the driver deactivates and reactivates tracking.
	require.Eventually(t, func() bool {
		return feed.ActiveWatches() == 0
	}, time.Second, time.Millisecond)

	failure := p.LastFailure()
	require.NotNil(t, failure)
	assert.Equal(t, sensor.PermissionDenied, failure.Code)

	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	assert.Equal(t, StateError, p.State())
	assert.Nil(t, p.LastKnown())

	// Activate without an intervening Deactivate is a no-op.
	require.NoError(t, p.Activate(context.Background()))
	assert.Equal(t, StateError, p.State())
	assert.Equal(t, 0, feed.ActiveWatches())

	// After explicit deactivation, tracking can start fresh.
	p.Deactivate()
	assert.Equal(t, StateIdle, p.State())

	mockRepo.EXPECT().UpdateCurrentLocation(gomock.Any(), gomock.Any()).Return(nil)
	done := make(chan struct{})
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.LocationUpdate) error {
			close(done)
			return nil
		})

	require.NoError(t, p.Activate(context.Background()))
	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	waitForState(t, p, StateWatching)
	<-done

	p.Deactivate()
	assert.Equal(t, 0, feed.ActiveWatches())
}

func TestPublisher_TransientFailureRecoversOnNextFix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)
	require.NoError(t, p.Activate(context.Background()))

	feed.Fail(sensor.Failure{Code: sensor.PositionUnavailable, Message: "no fix"})
	waitForState(t, p, StateError)

	// The watch stays alive through a transient failure.
	assert.Equal(t, 1, feed.ActiveWatches())

	mockRepo.EXPECT().UpdateCurrentLocation(gomock.Any(), gomock.Any()).Return(nil)
	done := make(chan struct{})
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.LocationUpdate) error {
			close(done)
			return nil
		})

	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	waitForState(t, p, StateWatching)
	<-done

	assert.Nil(t, p.LastFailure())
	p.Deactivate()
}

func TestPublisher_ActivateDeactivateCyclesDoNotLeakWatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	clk := clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Activate(context.Background()))
		p.Deactivate()
	}

	assert.Equal(t, 0, feed.ActiveWatches())
	assert.Equal(t, StateIdle, p.State())
}

func TestPublisher_RouteRecording(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLocationRepo(ctrl)
	mockGW := mocks.NewMockLocationGW(ctrl)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(base)
	feed := sensor.NewFeed()
	cfg := models.LocationConfig{PublishInterval: time.Second, SensorTimeout: time.Minute}

	p := NewPublisher("driver-1", cfg, feed, mockRepo, mockGW, clk)
	p.StartRoute("route-9")

	mockRepo.EXPECT().UpdateCurrentLocation(gomock.Any(), gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		AppendTrackPoint(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, point *models.TrackPoint) error {
			assert.Equal(t, "route-9", point.RouteID)
			assert.Equal(t, "driver-1", point.DriverID)
			return nil
		})
	mockRepo.EXPECT().UpsertRouteAssignment(gomock.Any(), gomock.Any()).Return(nil)
	mockGW.EXPECT().PublishTrackPoint(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan struct{})
	mockGW.EXPECT().
		PublishLocationUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update *models.LocationUpdate) error {
			assert.Equal(t, "route-9", update.RouteID)
			close(done)
			return nil
		})

	require.NoError(t, p.Activate(context.Background()))
	feed.Push(sensor.Position{Latitude: -6.2, Longitude: 106.8, CapturedAt: base})
	<-done

	mockRepo.EXPECT().ClearRouteAssignment(gomock.Any(), "driver-1").Return(nil)
	mockGW.EXPECT().PublishRouteEnded(gomock.Any(), "driver-1", "route-9").Return(nil)
	require.NoError(t, p.EndRoute(context.Background()))
	assert.Empty(t, p.RouteID())

	// Ending an already ended route touches nothing.
	require.NoError(t, p.EndRoute(context.Background()))

	p.Deactivate()
}
