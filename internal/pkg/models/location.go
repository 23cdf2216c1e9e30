package models

import "time"

// Location represents a geographic coordinate pair with a capture time
type Location struct {
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at"`
}

// LocationSample is a driver's current-position slot. One slot per
// driver, overwritten in place by that driver's publisher.
type LocationSample struct {
	DriverID   string    `json:"driver_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CapturedAt time.Time `json:"captured_at"`
}

// TrackPoint is an append-only point on an active route
type TrackPoint struct {
	DriverID   string    `json:"driver_id" db:"driver_id"`
	RouteID    string    `json:"route_id" db:"route_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at"`
}

// RouteAssignment links a driver to their active route and carries the
// last location published while the route was active
type RouteAssignment struct {
	DriverID      string    `json:"driver_id" db:"driver_id"`
	ActiveRouteID string    `json:"active_route_id" db:"active_route_id"`
	LastLatitude  float64   `json:"last_latitude" db:"last_latitude"`
	LastLongitude float64   `json:"last_longitude" db:"last_longitude"`
	LastSeenAt    time.Time `json:"last_seen_at" db:"last_seen_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// LocationUpdate is the change-feed event published for every accepted
// location write
type LocationUpdate struct {
	DriverID   string    `json:"driver_id"`
	RouteID    string    `json:"route_id,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CapturedAt time.Time `json:"captured_at"`
}

// RosterEntry is one driver's row in the dispatcher roster
type RosterEntry struct {
	DriverID    string    `json:"driver_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Status      string    `json:"status,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CapturedAt  time.Time `json:"captured_at"`
	Geohash     string    `json:"geohash,omitempty"`
	Stale       bool      `json:"stale"`
}
