package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/location"
	"github.com/dkurush/fleetops/services/location/sensor"
)

// PublisherState is the sampling state machine's current state
type PublisherState string

const (
	StateIdle       PublisherState = "idle"
	StateRequesting PublisherState = "requesting"
	StateWatching   PublisherState = "watching"
	StateError      PublisherState = "error"
)

// publishQueueSize bounds pending store writes per driver. Writes are
// throttled to one per interval, so the queue only grows when the
// store stalls for several intervals in a row.
const publishQueueSize = 16

type publishJob struct {
	pos        sensor.Position
	capturedAt time.Time
	routeID    string
}

// Publisher turns one driver's noisy sensor stream into a rate-limited
// write stream. Every sample updates the in-memory last-known position;
// a store write is only issued when the publish interval has elapsed.
// Write failures are swallowed: the next throttled write supersedes them.
type Publisher struct {
	driverID string
	cfg      models.LocationConfig
	source   sensor.Source
	repo     location.LocationRepo
	gw       location.LocationGW
	clk      clock.Clock

	mu              sync.Mutex
	state           PublisherState
	watch           sensor.Watch
	lastKnown       *models.Location
	lastFailure     *sensor.Failure
	routeID         string
	lastPublishedAt time.Time
	lastCapturedAt  time.Time
	loopDone        chan struct{}
	writes          chan publishJob
}

// NewPublisher creates a publisher for one driver
func NewPublisher(driverID string, cfg models.LocationConfig, source sensor.Source, repo location.LocationRepo, gw location.LocationGW, clk clock.Clock) *Publisher {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Publisher{
		driverID: driverID,
		cfg:      cfg,
		source:   source,
		repo:     repo,
		gw:       gw,
		clk:      clk,
		state:    StateIdle,
	}
}

// State returns the current sampling state
func (p *Publisher) State() PublisherState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastKnown returns the most recent sample, published or not
func (p *Publisher) LastKnown() *models.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastKnown == nil {
		return nil
	}
	loc := *p.lastKnown
	return &loc
}

// LastFailure returns the most recent sensor failure, if any
func (p *Publisher) LastFailure() *sensor.Failure {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastFailure == nil {
		return nil
	}
	f := *p.lastFailure
	return &f
}

// RouteID returns the active route id, empty when no route is active
func (p *Publisher) RouteID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.routeID
}

// Activate starts sensor sampling. A no-op when sampling is already
// active; after a terminal sensor failure the caller must Deactivate
// first, matching the user-intervention requirement.
func (p *Publisher) Activate(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return nil
	}
	p.state = StateRequesting
	p.lastFailure = nil
	p.mu.Unlock()

	watch, err := p.source.Watch(ctx, sensor.Options{
		Timeout:      p.cfg.SensorTimeout,
		HighAccuracy: true,
		MaximumAge:   5 * time.Second,
	})
	if err != nil {
		p.mu.Lock()
		p.state = StateError
		p.lastFailure = &sensor.Failure{Code: sensor.PositionUnavailable, Message: err.Error()}
		p.mu.Unlock()
		return err
	}

	done := make(chan struct{})
	writes := make(chan publishJob, publishQueueSize)
	p.mu.Lock()
	p.watch = watch
	p.loopDone = done
	p.writes = writes
	p.mu.Unlock()

	go p.loop(ctx, watch, done)
	go p.writer(ctx, writes)
	return nil
}

// Deactivate stops sampling and releases the sensor watch. Idempotent;
// repeated activate/deactivate cycles must not leak subscriptions. An
// in-flight store write is not cancelled (best effort, last write wins).
func (p *Publisher) Deactivate() {
	p.mu.Lock()
	watch := p.watch
	done := p.loopDone
	writes := p.writes
	p.watch = nil
	p.loopDone = nil
	p.writes = nil
	p.state = StateIdle
	p.lastFailure = nil
	p.mu.Unlock()

	if watch != nil {
		watch.Stop()
	}
	if done != nil {
		<-done
	}
	if writes != nil {
		// The sample loop has exited; queued writes drain in the
		// background and the writer exits on its own.
		close(writes)
	}
}

// StartRoute begins appending track points to the given route on every
// accepted publish
func (p *Publisher) StartRoute(routeID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routeID = routeID
}

// EndRoute stops track recording and clears the route assignment
func (p *Publisher) EndRoute(ctx context.Context) error {
	p.mu.Lock()
	routeID := p.routeID
	p.routeID = ""
	p.mu.Unlock()

	if routeID == "" {
		return nil
	}

	if err := p.repo.ClearRouteAssignment(ctx, p.driverID); err != nil {
		return err
	}
	if err := p.gw.PublishRouteEnded(ctx, p.driverID, routeID); err != nil {
		logger.Warn("Failed to publish route ended event",
			logger.String("driver_id", p.driverID),
			logger.String("route_id", routeID),
			logger.Err(err))
	}
	return nil
}

func (p *Publisher) loop(ctx context.Context, watch sensor.Watch, done chan struct{}) {
	defer close(done)

	positions := watch.Positions()
	failures := watch.Failures()

	for {
		select {
		case pos, ok := <-positions:
			if !ok {
				return
			}
			p.handleSample(ctx, pos)
		case failure, ok := <-failures:
			if !ok {
				return
			}
			if terminal := p.handleFailure(failure); terminal {
				return
			}
		}
	}
}

// handleSample records the sample locally and issues a throttled store
// write. The throttle guard is updated before the write is started so
// overlapping callbacks cannot double-publish within one interval.
func (p *Publisher) handleSample(ctx context.Context, pos sensor.Position) {
	capturedAt := pos.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = p.clk.Now()
	}

	p.mu.Lock()
	if p.state == StateIdle {
		p.mu.Unlock()
		return
	}
	if p.state == StateRequesting || p.state == StateError {
		p.state = StateWatching
		p.lastFailure = nil
	}
	p.lastKnown = &models.Location{
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		CapturedAt: capturedAt,
	}

	now := p.clk.Now()
	if !p.lastPublishedAt.IsZero() && now.Sub(p.lastPublishedAt) < p.cfg.PublishInterval {
		p.mu.Unlock()
		return
	}
	if capturedAt.Before(p.lastCapturedAt) {
		// Out-of-order sensor callback; published capture times must
		// stay non-decreasing per driver.
		p.mu.Unlock()
		return
	}
	p.lastPublishedAt = now
	p.lastCapturedAt = capturedAt
	routeID := p.routeID
	writes := p.writes
	p.mu.Unlock()

	// Sampling never waits on store acknowledgement. Accepted writes go
	// through a single writer goroutine so the store observes capture
	// times in the order they were accepted; a full queue drops the
	// sample and the next throttled write supersedes it.
	select {
	case writes <- publishJob{pos: pos, capturedAt: capturedAt, routeID: routeID}:
	default:
		logger.Warn("Publish queue is full, dropping sample",
			logger.String("driver_id", p.driverID))
	}
}

// writer drains accepted samples one at a time. A stalled store write
// delays later writes instead of racing them.
func (p *Publisher) writer(ctx context.Context, writes <-chan publishJob) {
	for job := range writes {
		p.publish(ctx, job.pos, job.capturedAt, job.routeID)
	}
}

func (p *Publisher) publish(ctx context.Context, pos sensor.Position, capturedAt time.Time, routeID string) {
	sample := &models.LocationSample{
		DriverID:   p.driverID,
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		CapturedAt: capturedAt,
	}

	if err := p.repo.UpdateCurrentLocation(ctx, sample); err != nil {
		logger.Warn("Failed to write current location",
			logger.String("driver_id", p.driverID),
			logger.Err(err))
	}

	if routeID != "" {
		point := &models.TrackPoint{
			DriverID:   p.driverID,
			RouteID:    routeID,
			Latitude:   pos.Latitude,
			Longitude:  pos.Longitude,
			CapturedAt: capturedAt,
		}
		if err := p.repo.AppendTrackPoint(ctx, point); err != nil {
			logger.Warn("Failed to append track point",
				logger.String("driver_id", p.driverID),
				logger.String("route_id", routeID),
				logger.Err(err))
		}
		assignment := &models.RouteAssignment{
			DriverID:      p.driverID,
			ActiveRouteID: routeID,
			LastLatitude:  pos.Latitude,
			LastLongitude: pos.Longitude,
			LastSeenAt:    capturedAt,
			UpdatedAt:     p.clk.Now(),
		}
		if err := p.repo.UpsertRouteAssignment(ctx, assignment); err != nil {
			logger.Warn("Failed to upsert route assignment",
				logger.String("driver_id", p.driverID),
				logger.Err(err))
		}
		if err := p.gw.PublishTrackPoint(ctx, point); err != nil {
			logger.Warn("Failed to publish track point",
				logger.String("driver_id", p.driverID),
				logger.Err(err))
		}
	}

	update := &models.LocationUpdate{
		DriverID:   p.driverID,
		RouteID:    routeID,
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		CapturedAt: capturedAt,
	}
	if err := p.gw.PublishLocationUpdate(ctx, update); err != nil {
		logger.Warn("Failed to publish location update",
			logger.String("driver_id", p.driverID),
			logger.Err(err))
	}
}

// handleFailure classifies a sensor failure. Permission denial is
// terminal: the watch is released and no further writes are issued
// until the publisher is deactivated and reactivated. Transient
// failures keep the watch alive; the next callback recovers.
func (p *Publisher) handleFailure(failure sensor.Failure) (terminal bool) {
	p.mu.Lock()
	if p.state == StateIdle {
		p.mu.Unlock()
		return false
	}
	p.state = StateError
	p.lastFailure = &failure
	terminal = !failure.Code.Transient()
	watch := p.watch
	if terminal {
		p.watch = nil
	}
	p.mu.Unlock()

	logger.Warn("Sensor failure",
		logger.String("driver_id", p.driverID),
		logger.String("code", string(failure.Code)),
		logger.Bool("terminal", terminal))

	if terminal && watch != nil {
		watch.Stop()
	}
	return terminal
}
