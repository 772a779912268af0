package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// IProposalEventRepository is the append-only audit log.
//
// Append fails with entities.ErrConflict when (proposal_id, seq) is already taken.
// Last returns a zero event (ID == "") when the proposal has no events.
type IProposalEventRepository interface {
	Append(ctx context.Context, ev entities.ProposalEvent) error
	ListByProposalID(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error)
	Last(ctx context.Context, proposalID int64) (entities.ProposalEvent, error)
}
