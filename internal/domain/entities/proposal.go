package entities

import "time"

// ProposalStatus is the credit-analysis state of a financing proposal.
//
// The proposal flow uses SUBMITTED, PENDING, APPROVED and REJECTED. PAID only
// appears in contract-level payloads and is never reachable through UpdateStatus.
type ProposalStatus string

const (
	ProposalStatusSubmitted ProposalStatus = "SUBMITTED"
	ProposalStatusPending   ProposalStatus = "PENDING"
	ProposalStatusApproved  ProposalStatus = "APPROVED"
	ProposalStatusRejected  ProposalStatus = "REJECTED"
	ProposalStatusPaid      ProposalStatus = "PAID"
)

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusSubmitted: {ProposalStatusPending, ProposalStatusApproved, ProposalStatusRejected},
	ProposalStatusPending:   {ProposalStatusApproved, ProposalStatusRejected, ProposalStatusSubmitted},
	// corrective admin overrides
	ProposalStatusApproved: {ProposalStatusRejected},
	ProposalStatusRejected: {ProposalStatusApproved},
}

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusSubmitted, ProposalStatusPending, ProposalStatusApproved, ProposalStatusRejected, ProposalStatusPaid:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is an allowed status change.
// Identical statuses are not transitions and return false.
func CanTransition(from, to ProposalStatus) bool {
	for _, s := range proposalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Proposal is a financing request submitted by a dealer on behalf of a customer.
//
// Storage model (DynamoDB):
//   - PK: id (number, allocated from the counters table)
//
// Version is bumped on every write and used as the compare-and-swap token.
type Proposal struct {
	ID     int64          `json:"id"`
	Status ProposalStatus `json:"status"`

	CustomerName  string `json:"customer_name"`
	CustomerCPF   string `json:"customer_cpf"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	VehicleBrand string  `json:"vehicle_brand"`
	VehicleModel string  `json:"vehicle_model"`
	VehicleYear  int     `json:"vehicle_year"`
	VehiclePlate string  `json:"vehicle_plate"`
	FipeCode     string  `json:"fipe_code"`
	FipeValue    float64 `json:"fipe_value"`

	FinancedValue    float64 `json:"financed_value"`
	DownPaymentValue float64 `json:"down_payment_value"`
	TermMonths       int     `json:"term_months"`

	DealerID *string `json:"dealer_id,omitempty"`
	SellerID *string `json:"seller_id,omitempty"`

	Notes string `json:"notes"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch records a mutation at now.
func (p *Proposal) Touch(now time.Time) {
	p.UpdatedAt = now
	p.Version++
}

// NewerOrEqual reports whether p is at least as recent as other.
func (p Proposal) NewerOrEqual(other Proposal) bool {
	return !p.UpdatedAt.Before(other.UpdatedAt)
}
