package constants

// Redis key formats
const (
	// Location service
	KeyDriverLocation = "driver:location:%s" // Format: driver:location:{driver_id}
	KeyDriverGeo      = "drivers:geo"        // Geo set of all driver current positions
	KeyDriverIndex    = "drivers:tracked"    // Set of driver ids with a current-location slot
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
	FieldRouteID   = "route_id"
)
