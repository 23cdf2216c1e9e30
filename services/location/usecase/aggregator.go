package usecase

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"sync"

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/constants"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/internal/utils"
	"github.com/dkurush/fleetops/services/location"
)

// Aggregator merges all drivers' current positions into a live roster
// for dispatcher consoles. Updates are keyed merges: a change to one
// driver's slot touches only that entry. Stale entries are flagged,
// never removed; a dispatcher must see last known position, not no data.
type Aggregator struct {
	cfg  models.LocationConfig
	repo location.LocationRepo
	nc   *natspkg.Client
	clk  clock.Clock

	mu      sync.RWMutex
	entries map[string]*rosterState
	sub     *natspkg.Subscription

	// onUpdate, when set, is invoked for every applied change with the
	// rendered entry. Used to push roster updates to consoles.
	onUpdate func(models.RosterEntry)
}

type rosterState struct {
	entry models.RosterEntry
	valid bool // coordinates are numeric
}

// NewAggregator creates a roster aggregator
func NewAggregator(cfg models.LocationConfig, repo location.LocationRepo, nc *natspkg.Client, clk clock.Clock) *Aggregator {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Aggregator{
		cfg:     cfg,
		repo:    repo,
		nc:      nc,
		clk:     clk,
		entries: make(map[string]*rosterState),
	}
}

// OnUpdate registers a callback invoked for every applied change.
// Must be called before Start.
func (a *Aggregator) OnUpdate(fn func(models.RosterEntry)) {
	a.onUpdate = fn
}

// Start subscribes to the location change feed and then merges the
// stored snapshot. The feed attaches first so a change landing during
// the snapshot read is applied rather than missed; the snapshot fills
// in around whatever the feed already wrote. The store fans out to any
// number of aggregators; this one holds exactly one subscription and
// must be stopped to release it.
func (a *Aggregator) Start(ctx context.Context) error {
	sub, err := a.nc.Subscribe(constants.SubjectLocationUpdate, a.handleChange)
	if err != nil {
		return err
	}

	if err := a.loadSnapshot(ctx); err != nil {
		_ = sub.Unsubscribe()
		return err
	}

	a.mu.Lock()
	a.sub = sub
	a.mu.Unlock()
	return nil
}

// loadSnapshot merges the stored current positions into the roster. A
// slot the live feed already wrote with an equal or newer capture time
// is left untouched.
func (a *Aggregator) loadSnapshot(ctx context.Context) error {
	// Display names and statuses decorate the roster; losing them is
	// not fatal.
	profiles := map[string]*models.User{}
	if users, err := a.repo.GetDriverProfiles(ctx); err != nil {
		logger.Warn("Failed to load driver profiles", logger.Err(err))
	} else {
		for _, u := range users {
			profiles[u.ID] = u
		}
	}

	samples, err := a.repo.ListCurrentLocations(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	for _, s := range samples {
		if state, ok := a.entries[s.DriverID]; ok && state.valid && !state.entry.CapturedAt.Before(s.CapturedAt) {
			continue
		}
		a.applyLocked(&models.LocationUpdate{
			DriverID:   s.DriverID,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			CapturedAt: s.CapturedAt,
		})
	}
	for id, state := range a.entries {
		if u, ok := profiles[id]; ok {
			state.entry.DisplayName = u.FullName
			if u.IsActive {
				state.entry.Status = "active"
			} else {
				state.entry.Status = "inactive"
			}
		}
	}
	a.mu.Unlock()
	return nil
}

// Stop releases the change-feed subscription. Idempotent.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	sub := a.sub
	a.sub = nil
	a.mu.Unlock()

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe location feed", logger.Err(err))
		}
	}
}

// handleChange applies one change-feed event to the roster
func (a *Aggregator) handleChange(_ string, data []byte) {
	// Coordinates are decoded as pointers so a record lacking numeric
	// coordinates is detectable rather than defaulting to (0, 0).
	var raw struct {
		DriverID   string          `json:"driver_id"`
		RouteID    string          `json:"route_id"`
		Latitude   *float64        `json:"latitude"`
		Longitude  *float64        `json:"longitude"`
		CapturedAt json.RawMessage `json:"captured_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || raw.DriverID == "" {
		logger.Warn("Malformed location change event", logger.Err(err))
		return
	}

	update := &models.LocationUpdate{
		DriverID:  raw.DriverID,
		RouteID:   raw.RouteID,
		Latitude:  math.NaN(),
		Longitude: math.NaN(),
	}
	if raw.Latitude != nil {
		update.Latitude = *raw.Latitude
	}
	if raw.Longitude != nil {
		update.Longitude = *raw.Longitude
	}
	if len(raw.CapturedAt) > 0 {
		_ = json.Unmarshal(raw.CapturedAt, &update.CapturedAt)
	}

	a.Apply(update)
}

// Apply merges one driver's update into the roster by key, leaving all
// other entries untouched
func (a *Aggregator) Apply(update *models.LocationUpdate) {
	a.mu.Lock()
	state := a.applyLocked(update)
	var rendered models.RosterEntry
	notify := false
	if state != nil && state.valid && a.onUpdate != nil {
		rendered = a.render(state)
		notify = true
	}
	a.mu.Unlock()

	if notify {
		a.onUpdate(rendered)
	}
}

// applyLocked merges the update under the lock. A malformed record is
// retained but marked invalid so a transient bad write cannot remove a
// driver from the roster permanently; the next valid write repairs it.
func (a *Aggregator) applyLocked(update *models.LocationUpdate) *rosterState {
	state, ok := a.entries[update.DriverID]
	if !ok {
		state = &rosterState{entry: models.RosterEntry{DriverID: update.DriverID}}
		a.entries[update.DriverID] = state
	}

	if !utils.IsFiniteCoordinate(update.Latitude, update.Longitude) {
		state.valid = false
		logger.Warn("Location record without numeric coordinates",
			logger.String("driver_id", update.DriverID))
		return state
	}

	state.valid = true
	state.entry.Latitude = update.Latitude
	state.entry.Longitude = update.Longitude
	state.entry.CapturedAt = update.CapturedAt
	state.entry.Geohash = utils.EncodePoint(update.Latitude, update.Longitude, utils.RosterGeohashPrecision)
	return state
}

// render must be called with the lock held
func (a *Aggregator) render(state *rosterState) models.RosterEntry {
	entry := state.entry
	entry.Stale = a.cfg.StaleAfter > 0 &&
		!entry.CapturedAt.IsZero() &&
		a.clk.Now().Sub(entry.CapturedAt) > a.cfg.StaleAfter
	return entry
}

// Roster returns the rendered roster sorted by driver id. Entries with
// non-numeric coordinates are excluded; stale entries are flagged but
// present.
func (a *Aggregator) Roster() []models.RosterEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	roster := make([]models.RosterEntry, 0, len(a.entries))
	for _, state := range a.entries {
		if !state.valid {
			continue
		}
		roster = append(roster, a.render(state))
	}

	sort.Slice(roster, func(i, j int) bool {
		return roster[i].DriverID < roster[j].DriverID
	})
	return roster
}

// Entry returns one driver's rendered roster entry
func (a *Aggregator) Entry(driverID string) (models.RosterEntry, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	state, ok := a.entries[driverID]
	if !ok || !state.valid {
		return models.RosterEntry{}, false
	}
	return a.render(state), true
}

// NearbyDrivers returns drivers within radiusKm of the given point
func (a *Aggregator) NearbyDrivers(ctx context.Context, latitude, longitude, radiusKm float64) ([]*models.RosterEntry, error) {
	return a.repo.GetNearbyDrivers(ctx, latitude, longitude, radiusKm)
}
