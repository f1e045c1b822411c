package model

// Event types published to realtime subscribers
const (
	EventApprovalCreated = "approval.created"
	EventApprovalUpdated = "approval.updated"
)

// Event is a notification delivered to connected clients. An empty Recipients list means
// every client receives it.
type Event struct {
	Type       string      `json:"type"`
	Recipients []string    `json:"-"`
	Data       interface{} `json:"data"`
}
