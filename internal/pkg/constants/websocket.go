package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"

	// Driver tracking events
	EventTrackingStart  = "tracking_start"
	EventTrackingStop   = "tracking_stop"
	EventLocationUpdate = "location_update"
	EventSensorError    = "sensor_error"
	EventRouteStart     = "route_start"
	EventRouteEnd       = "route_end"

	// Dispatcher console events
	EventRosterUpdate = "roster_update"
	EventChatMessage  = "chat_message"
	EventTaskUpdate   = "task_update"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorInvalidLocation  = "invalid_location"
	ErrorTrackingInactive = "tracking_inactive"
)
