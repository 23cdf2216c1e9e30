package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/location/sensor"
	"github.com/dkurush/fleetops/services/location/usecase"
)

type locationFrame struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CapturedAt time.Time `json:"captured_at"`
}

type sensorErrorFrame struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type routeFrame struct {
	RouteID string `json:"route_id"`
}

// handleTrackingStart creates the driver's sampling session and
// activates the publisher. Re-sent start events reuse the session.
func (m *WSManager) handleTrackingStart(client *models.WebSocketClient) error {
	m.mu.Lock()
	s, ok := m.sessions[client.UserID]
	if !ok {
		feed := sensor.NewFeed()
		s = &driverSession{
			feed:      feed,
			publisher: usecase.NewPublisher(client.UserID, m.cfg.Location, feed, m.repo, m.gw, m.clk),
		}
		m.sessions[client.UserID] = s
	}
	m.mu.Unlock()

	if err := s.publisher.Activate(context.Background()); err != nil {
		logger.Warn("Failed to activate publisher",
			logger.String("driver_id", client.UserID),
			logger.Err(err))
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInternalError, "Failed to start tracking")
	}

	logger.Info("Tracking started",
		logger.String("driver_id", client.UserID))
	return nil
}

// handleTrackingStop deactivates the publisher but keeps the session
// so tracking can resume on the same connection
func (m *WSManager) handleTrackingStop(client *models.WebSocketClient) error {
	s, ok := m.session(client.UserID)
	if !ok {
		return nil
	}
	s.publisher.Deactivate()

	logger.Info("Tracking stopped",
		logger.String("driver_id", client.UserID))
	return nil
}

// handleLocationUpdate bridges a device position frame into the sensor feed
func (m *WSManager) handleLocationUpdate(client *models.WebSocketClient, data json.RawMessage) error {
	s, ok := m.session(client.UserID)
	if !ok {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorTrackingInactive, "Tracking is not active")
	}

	var frame locationFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		logger.Warn("Error parsing location update",
			logger.String("driver_id", client.UserID),
			logger.Err(err))
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidLocation, "Invalid location format")
	}

	s.feed.Push(sensor.Position{
		Latitude:   frame.Latitude,
		Longitude:  frame.Longitude,
		CapturedAt: frame.CapturedAt,
	})
	return nil
}

// handleSensorError bridges a device sensor failure into the sensor feed
func (m *WSManager) handleSensorError(client *models.WebSocketClient, data json.RawMessage) error {
	s, ok := m.session(client.UserID)
	if !ok {
		return nil
	}

	var frame sensorErrorFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid sensor error format")
	}

	code := sensor.FailureCode(frame.Code)
	switch code {
	case sensor.PermissionDenied, sensor.PositionUnavailable, sensor.Timeout:
	default:
		code = sensor.PositionUnavailable
	}

	s.feed.Fail(sensor.Failure{Code: code, Message: frame.Message})
	return nil
}

// handleRouteStart begins track recording for the given route
func (m *WSManager) handleRouteStart(client *models.WebSocketClient, data json.RawMessage) error {
	s, ok := m.session(client.UserID)
	if !ok {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorTrackingInactive, "Tracking is not active")
	}

	var frame routeFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.RouteID == "" {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorValidationFailed, "route_id is required")
	}

	s.publisher.StartRoute(frame.RouteID)

	logger.Info("Route started",
		logger.String("driver_id", client.UserID),
		logger.String("route_id", frame.RouteID))
	return nil
}

// handleRouteEnd stops track recording and clears the route assignment
func (m *WSManager) handleRouteEnd(client *models.WebSocketClient) error {
	s, ok := m.session(client.UserID)
	if !ok {
		return nil
	}

	if err := s.publisher.EndRoute(context.Background()); err != nil {
		logger.Warn("Failed to end route",
			logger.String("driver_id", client.UserID),
			logger.Err(err))
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInternalError, "Failed to end route")
	}
	return nil
}
