package entities

import "time"

// RealtimeEventName is the closed set of names published on the realtime bridge.
type RealtimeEventName string

const (
	RealtimeProposalCreated         RealtimeEventName = "PROPOSAL_CREATED"
	RealtimeProposalStatusUpdated   RealtimeEventName = "PROPOSAL_STATUS_UPDATED"
	RealtimeProposalEventAppended   RealtimeEventName = "PROPOSAL_EVENT_APPENDED"
	RealtimeProposalsRefreshRequest RealtimeEventName = "PROPOSALS_REFRESH_REQUEST"
)

func (n RealtimeEventName) Valid() bool {
	switch n {
	case RealtimeProposalCreated, RealtimeProposalStatusUpdated, RealtimeProposalEventAppended, RealtimeProposalsRefreshRequest:
		return true
	}
	return false
}

// RealtimeEvent is the envelope exchanged with the realtime collaborator.
// Source lets receivers drop their own echoes.
type RealtimeEvent struct {
	Name       RealtimeEventName `json:"name"`
	Source     string            `json:"source"`
	ProposalID int64             `json:"proposal_id,omitempty"`
	Proposal   *Proposal         `json:"proposal,omitempty"`
	Event      *ProposalEvent    `json:"event,omitempty"`
	EmittedAt  time.Time         `json:"emitted_at"`
}
