package models

import "time"

// ActivityStatus classifies an activity-log entry for the admin feed
type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusInfo    ActivityStatus = "info"
	ActivityStatusWarning ActivityStatus = "warning"
	ActivityStatusDanger  ActivityStatus = "danger"
)

// ActivityEntry is one row of the admin activity feed. Entries are
// published best-effort; the feed consumer lives outside this system.
type ActivityEntry struct {
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Status    ActivityStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
}
