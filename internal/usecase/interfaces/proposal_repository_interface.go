package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// ProposalFilter narrows ListProposals. Zero values mean "any".
type ProposalFilter struct {
	Status   entities.ProposalStatus
	DealerID string
}

// IProposalRepository abstracts persistence for Proposal and its audit events.
//
// Writes are compare-and-swap on Version: Update fails with entities.ErrConflict
// when the stored version differs from expectedVersion. Events passed to Create
// and Update are written in the same transaction as the proposal.
// GetByID returns a zero Proposal (ID == 0) when the id is unknown.
type IProposalRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, p entities.Proposal, events []entities.ProposalEvent) error
	GetByID(ctx context.Context, id int64) (entities.Proposal, error)
	List(ctx context.Context, filter ProposalFilter) ([]entities.Proposal, error)
	Update(ctx context.Context, p entities.Proposal, expectedVersion int64, events []entities.ProposalEvent) error
	// ApplySnapshot stores p only when no local record exists or the local
	// UpdatedAt is not after p.UpdatedAt.
	ApplySnapshot(ctx context.Context, p entities.Proposal) (bool, error)
	// Delete removes the proposal and its events; false when it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}
