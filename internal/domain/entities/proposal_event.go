package entities

import "time"

type ProposalEventType string

const (
	ProposalEventCreated       ProposalEventType = "CREATED"
	ProposalEventStatusUpdated ProposalEventType = "STATUS_UPDATED"
	ProposalEventNoteAdded     ProposalEventType = "NOTE_ADDED"
)

func (t ProposalEventType) Valid() bool {
	switch t {
	case ProposalEventCreated, ProposalEventStatusUpdated, ProposalEventNoteAdded:
		return true
	}
	return false
}

// ProposalEvent is one immutable entry of a proposal's audit trail.
//
// Storage model (DynamoDB):
//   - PK: proposal_id (number), SK: seq (number)
//
// Seq is assigned by the timeline recorder and breaks ties between events
// sharing the same CreatedAt.
type ProposalEvent struct {
	ID         string            `json:"id"`
	ProposalID int64             `json:"proposal_id"`
	Seq        int64             `json:"seq"`
	Type       ProposalEventType `json:"type"`
	StatusFrom *ProposalStatus   `json:"status_from,omitempty"`
	StatusTo   *ProposalStatus   `json:"status_to,omitempty"`
	Actor      string            `json:"actor"`
	Note       string            `json:"note,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// EventFields are the caller-controlled parts of a new event.
type EventFields struct {
	StatusFrom *ProposalStatus
	StatusTo   *ProposalStatus
	Actor      string
	Note       string
}

// Before orders events by CreatedAt, then Seq.
func (e ProposalEvent) Before(other ProposalEvent) bool {
	if e.CreatedAt.Equal(other.CreatedAt) {
		return e.Seq < other.Seq
	}
	return e.CreatedAt.Before(other.CreatedAt)
}

func StatusPtr(s ProposalStatus) *ProposalStatus {
	return &s
}
