package constants

// NATS Subjects
const (
	// Location service
	SubjectLocationUpdate = "location.update"          // per-driver current-slot writes
	SubjectRouteTrack     = "location.track"           // track-point appends while a route is active
	SubjectRouteEnded     = "location.route.ended"     // route assignment cleared

	// Chat service. Conversation id is appended as the last token.
	SubjectChatMessage       = "chat.message.%s"
	SubjectChatMessagePrefix = "chat.message."

	// Task service
	SubjectTaskCreated = "task.created"
	SubjectTaskUpdated = "task.updated"
)
