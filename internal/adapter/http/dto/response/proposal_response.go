package response

import (
	"time"

	"grota_financiamento/internal/domain/entities"
)

type ProposalCustomerResponse struct {
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ProposalVehicleResponse struct {
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Year      int     `json:"year"`
	Plate     string  `json:"plate"`
	FipeCode  string  `json:"fipeCode,omitempty"`
	FipeValue float64 `json:"fipeValue"`
}

type ProposalResponse struct {
	ID               int64                    `json:"id"`
	Status           string                   `json:"status"`
	Customer         ProposalCustomerResponse `json:"customer"`
	Vehicle          ProposalVehicleResponse  `json:"vehicle"`
	FinancedValue    float64                  `json:"financedValue"`
	DownPaymentValue float64                  `json:"downPaymentValue"`
	TermMonths       int                      `json:"termMonths"`
	MonthlyPayment   float64                  `json:"monthlyPayment"`
	DealerID         *string                  `json:"dealerId,omitempty"`
	SellerID         *string                  `json:"sellerId,omitempty"`
	Notes            string                   `json:"notes"`
	Version          int64                    `json:"version"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:     p.ID,
		Status: string(p.Status),
		Customer: ProposalCustomerResponse{
			Name:  p.CustomerName,
			CPF:   p.CustomerCPF,
			Email: p.CustomerEmail,
			Phone: p.CustomerPhone,
		},
		Vehicle: ProposalVehicleResponse{
			Brand:     p.VehicleBrand,
			Model:     p.VehicleModel,
			Year:      p.VehicleYear,
			Plate:     p.VehiclePlate,
			FipeCode:  p.FipeCode,
			FipeValue: p.FipeValue,
		},
		FinancedValue:    p.FinancedValue,
		DownPaymentValue: p.DownPaymentValue,
		TermMonths:       p.TermMonths,
		MonthlyPayment:   entities.MonthlyPayment(p.FinancedValue, p.TermMonths),
		DealerID:         p.DealerID,
		SellerID:         p.SellerID,
		Notes:            p.Notes,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromProposals(list []entities.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProposal(p))
	}
	return out
}

type ProposalEventResponse struct {
	ID         string    `json:"id"`
	ProposalID int64     `json:"proposalId"`
	Type       string    `json:"type"`
	StatusFrom *string   `json:"statusFrom,omitempty"`
	StatusTo   *string   `json:"statusTo,omitempty"`
	Actor      string    `json:"actor"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromProposalEvent(e entities.ProposalEvent) ProposalEventResponse {
	return ProposalEventResponse{
		ID:         e.ID,
		ProposalID: e.ProposalID,
		Type:       string(e.Type),
		StatusFrom: statusString(e.StatusFrom),
		StatusTo:   statusString(e.StatusTo),
		Actor:      e.Actor,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}

func FromProposalEvents(list []entities.ProposalEvent) []ProposalEventResponse {
	out := make([]ProposalEventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromProposalEvent(e))
	}
	return out
}

type SnapshotResponse struct {
	Applied bool `json:"applied"`
}

func statusString(s *entities.ProposalStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
