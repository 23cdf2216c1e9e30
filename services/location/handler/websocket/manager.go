package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	pkgws "github.com/dkurush/fleetops/internal/pkg/websocket"
	"github.com/dkurush/fleetops/services/location"
	"github.com/dkurush/fleetops/services/location/sensor"
	"github.com/dkurush/fleetops/services/location/usecase"
)

// WSManager handles driver WebSocket connections. Each connected
// driver gets a sensor feed bridged from their device frames and a
// publisher consuming it.
type WSManager struct {
	cfg     *models.Config
	repo    location.LocationRepo
	gw      location.LocationGW
	clk     clock.Clock
	manager *pkgws.Manager

	mu       sync.Mutex
	sessions map[string]*driverSession
}

type driverSession struct {
	feed      *sensor.Feed
	publisher *usecase.Publisher
}

// NewWSManager creates a WebSocket manager for the location service
func NewWSManager(cfg *models.Config, repo location.LocationRepo, gw location.LocationGW, clk clock.Clock, manager *pkgws.Manager) *WSManager {
	return &WSManager{
		cfg:      cfg,
		repo:     repo,
		gw:       gw,
		clk:      clk,
		manager:  manager,
		sessions: make(map[string]*driverSession),
	}
}

// HandleWebSocket handles new WebSocket connections
func (m *WSManager) HandleWebSocket(c echo.Context) error {
	return m.manager.HandleConnection(c, m.handleClientConnection)
}

// handleClientConnection manages the client's WebSocket connection.
// Teardown deactivates the publisher so no sensor watch outlives the
// connection.
func (m *WSManager) handleClientConnection(client *models.WebSocketClient, ws *websocket.Conn) error {
	client.Conn = ws
	m.manager.AddClient(client)
	defer func() {
		m.manager.RemoveClient(client.UserID)
		m.teardownSession(client.UserID)
	}()

	return m.messageLoop(client)
}

func (m *WSManager) messageLoop(client *models.WebSocketClient) error {
	for {
		_, msg, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read failed",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return err
		}

		if err := m.handleMessage(client, msg); err != nil {
			logger.Warn("Error handling message",
				logger.String("user_id", client.UserID),
				logger.Err(err))
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (m *WSManager) handleMessage(client *models.WebSocketClient, msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventTrackingStart:
		return m.handleTrackingStart(client)
	case constants.EventTrackingStop:
		return m.handleTrackingStop(client)
	case constants.EventLocationUpdate:
		return m.handleLocationUpdate(client, wsMsg.Data)
	case constants.EventSensorError:
		return m.handleSensorError(client, wsMsg.Data)
	case constants.EventRouteStart:
		return m.handleRouteStart(client, wsMsg.Data)
	case constants.EventRouteEnd:
		return m.handleRouteEnd(client)
	default:
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Unknown event type")
	}
}

func (m *WSManager) session(driverID string) (*driverSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[driverID]
	return s, ok
}

func (m *WSManager) teardownSession(driverID string) {
	m.mu.Lock()
	s, ok := m.sessions[driverID]
	delete(m.sessions, driverID)
	m.mu.Unlock()

	if ok {
		s.publisher.Deactivate()
	}
}
