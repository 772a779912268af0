package request

import (
	"strings"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase"
)

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	CPF   string `json:"cpf" binding:"required,cpf"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type VehicleRequest struct {
	Brand     string `json:"brand" binding:"required"`
	Model     string `json:"model" binding:"required"`
	Year      int    `json:"year" binding:"required,gte=1900"`
	Plate     string `json:"plate" binding:"required"`
	FipeCode  string `json:"fipeCode"`
	FipeValue Amount `json:"fipeValue"`
}

// CreateProposalRequest is the dealer portal's new-proposal payload.
// Money fields may be sent as numbers or as the text typed in the form.
type CreateProposalRequest struct {
	Customer         CustomerRequest `json:"customer" binding:"required"`
	Vehicle          VehicleRequest  `json:"vehicle" binding:"required"`
	FinancedValue    Amount          `json:"financedValue"`
	DownPaymentValue Amount          `json:"downPaymentValue"`
	TermMonths       int             `json:"termMonths"`
	DealerID         *string         `json:"dealerId"`
	SellerID         *string         `json:"sellerId"`
	Notes            string          `json:"notes"`
}

func (r CreateProposalRequest) ToInput() usecase.CreateProposalInput {
	return usecase.CreateProposalInput{
		CustomerName:     r.Customer.Name,
		CustomerCPF:      r.Customer.CPF,
		CustomerEmail:    r.Customer.Email,
		CustomerPhone:    r.Customer.Phone,
		VehicleBrand:     r.Vehicle.Brand,
		VehicleModel:     r.Vehicle.Model,
		VehicleYear:      r.Vehicle.Year,
		VehiclePlate:     r.Vehicle.Plate,
		FipeCode:         r.Vehicle.FipeCode,
		FipeValue:        r.Vehicle.FipeValue.Float64(),
		FinancedValue:    r.FinancedValue.Float64(),
		DownPaymentValue: r.DownPaymentValue.Float64(),
		TermMonths:       r.TermMonths,
		DealerID:         trimmedPtr(r.DealerID),
		SellerID:         trimmedPtr(r.SellerID),
		Notes:            r.Notes,
	}
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
	Actor  string  `json:"actor" binding:"required"`
}

func (r UpdateStatusRequest) NextStatus() entities.ProposalStatus {
	return entities.ProposalStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}

type UpdateNoteRequest struct {
	Notes string `json:"notes"`
	Actor string `json:"actor" binding:"required"`
}

type AssignmentRequest struct {
	DealerID *string `json:"dealerId"`
	SellerID *string `json:"sellerId"`
	Actor    string  `json:"actor" binding:"required"`
}

func (r AssignmentRequest) Dealer() *string { return trimmedPtr(r.DealerID) }
func (r AssignmentRequest) Seller() *string { return trimmedPtr(r.SellerID) }

// AppendEventRequest records a manual timeline entry (notes, documents, contacts).
type AppendEventRequest struct {
	Type       string  `json:"type" binding:"required"`
	StatusFrom *string `json:"statusFrom"`
	StatusTo   *string `json:"statusTo"`
	Actor      string  `json:"actor" binding:"required"`
	Note       string  `json:"note"`
}

func (r AppendEventRequest) EventType() entities.ProposalEventType {
	return entities.ProposalEventType(strings.ToUpper(strings.TrimSpace(r.Type)))
}

func (r AppendEventRequest) Fields() entities.EventFields {
	return entities.EventFields{
		StatusFrom: statusPtr(r.StatusFrom),
		StatusTo:   statusPtr(r.StatusTo),
		Actor:      r.Actor,
		Note:       r.Note,
	}
}

// ProposalSnapshotRequest is a full proposal received from another instance.
type ProposalSnapshotRequest struct {
	Source   string                 `json:"source" binding:"required"`
	Proposal ProposalSnapshotFields `json:"proposal" binding:"required"`
}

type ProposalSnapshotFields struct {
	ID               int64     `json:"id" binding:"required,gt=0"`
	Status           string    `json:"status" binding:"required"`
	CustomerName     string    `json:"customerName"`
	CustomerCPF      string    `json:"customerCpf"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerPhone    string    `json:"customerPhone"`
	VehicleBrand     string    `json:"vehicleBrand"`
	VehicleModel     string    `json:"vehicleModel"`
	VehicleYear      int       `json:"vehicleYear"`
	VehiclePlate     string    `json:"vehiclePlate"`
	FipeCode         string    `json:"fipeCode"`
	FipeValue        float64   `json:"fipeValue"`
	FinancedValue    float64   `json:"financedValue"`
	DownPaymentValue float64   `json:"downPaymentValue"`
	TermMonths       int       `json:"termMonths"`
	DealerID         *string   `json:"dealerId"`
	SellerID         *string   `json:"sellerId"`
	Notes            string    `json:"notes"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" binding:"required"`
}

func (r ProposalSnapshotRequest) ToEntity() entities.Proposal {
	p := r.Proposal
	return entities.Proposal{
		ID:               p.ID,
		Status:           entities.ProposalStatus(strings.ToUpper(strings.TrimSpace(p.Status))),
		CustomerName:     p.CustomerName,
		CustomerCPF:      p.CustomerCPF,
		CustomerEmail:    p.CustomerEmail,
		CustomerPhone:    p.CustomerPhone,
		VehicleBrand:     p.VehicleBrand,
		VehicleModel:     p.VehicleModel,
		VehicleYear:      p.VehicleYear,
		VehiclePlate:     p.VehiclePlate,
		FipeCode:         p.FipeCode,
		FipeValue:        p.FipeValue,
		FinancedValue:    p.FinancedValue,
		DownPaymentValue: p.DownPaymentValue,
		TermMonths:       p.TermMonths,
		DealerID:         trimmedPtr(p.DealerID),
		SellerID:         trimmedPtr(p.SellerID),
		Notes:            p.Notes,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        p.UpdatedAt.UTC(),
	}
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func statusPtr(s *string) *entities.ProposalStatus {
	if s == nil {
		return nil
	}
	return entities.StatusPtr(entities.ProposalStatus(strings.ToUpper(strings.TrimSpace(*s))))
}
