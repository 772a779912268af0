package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// ContractFilter narrows ListContracts. Status is compared after refresh.
type ContractFilter struct {
	Status entities.BillingStatus
}

// IContractRepository persists BillingContract with its installment schedule.
//
// Installments are stored with the contract so a single conditional write covers
// an installment mutation and the re-derived contract status.
// Get* return a zero contract (ID == "") when nothing matches.
type IContractRepository interface {
	Create(ctx context.Context, c entities.BillingContract) error
	GetByID(ctx context.Context, id string) (entities.BillingContract, error)
	GetByProposalID(ctx context.Context, proposalID int64) (entities.BillingContract, error)
	List(ctx context.Context) ([]entities.BillingContract, error)
	Update(ctx context.Context, c entities.BillingContract, expectedVersion int64) error
}

// IOccurrenceRepository is the append-only contact log of a contract.
type IOccurrenceRepository interface {
	Create(ctx context.Context, o entities.Occurrence) error
	// ListByContractID returns newest first.
	ListByContractID(ctx context.Context, contractID string) ([]entities.Occurrence, error)
}
