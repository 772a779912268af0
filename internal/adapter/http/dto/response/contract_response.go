package response

import (
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/pkg/calendar"
	"grota_financiamento/pkg/money"
)

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type InstallmentResponse struct {
	Number   int        `json:"number"`
	DueDate  string     `json:"dueDate"`
	Amount   float64    `json:"amount"`
	Paid     bool       `json:"paid"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`
	DaysLate int        `json:"daysLate"`
}

// ContractResponse is the billing aggregate as shown in the admin console.
// Dates without a time component are rendered as YYYY-MM-DD.
type ContractResponse struct {
	ID                        string                `json:"id"`
	ProposalID                int64                 `json:"proposalId"`
	CustomerID                string                `json:"customerId"`
	Customer                  CustomerResponse      `json:"customer"`
	StartDate                 string                `json:"startDate"`
	PaidAt                    *time.Time            `json:"paidAt,omitempty"`
	FinancedValue             float64               `json:"financedValue"`
	InstallmentValue          float64               `json:"installmentValue"`
	InstallmentsTotal         int                   `json:"installmentsTotal"`
	OutstandingBalance        float64               `json:"outstandingBalance"`
	RemainingBalance          float64               `json:"remainingBalance"`
	RemainingBalanceFormatted string                `json:"remainingBalanceFormatted"`
	Status                    string                `json:"status"`
	Installments              []InstallmentResponse `json:"installments"`
	Version                   int64                 `json:"version"`
	CreatedAt                 time.Time             `json:"createdAt"`
	UpdatedAt                 time.Time             `json:"updatedAt"`
}

func FromContract(c entities.BillingContract) ContractResponse {
	installments := make([]InstallmentResponse, 0, len(c.Installments))
	for _, in := range c.Installments {
		installments = append(installments, InstallmentResponse{
			Number:   in.Number,
			DueDate:  calendar.FormatDate(in.DueDate),
			Amount:   in.Amount,
			Paid:     in.Paid,
			PaidAt:   in.PaidAt,
			DaysLate: in.DaysLate,
		})
	}
	return ContractResponse{
		ID:         c.ID,
		ProposalID: c.ProposalID,
		CustomerID: c.CustomerID,
		Customer: CustomerResponse{
			ID:    c.Customer.ID,
			Name:  c.Customer.Name,
			CPF:   c.Customer.CPF,
			Email: c.Customer.Email,
			Phone: c.Customer.Phone,
		},
		StartDate:                 calendar.FormatDate(c.StartDate),
		PaidAt:                    c.PaidAt,
		FinancedValue:             c.FinancedValue,
		InstallmentValue:          c.InstallmentValue,
		InstallmentsTotal:         c.InstallmentsTotal,
		OutstandingBalance:        c.OutstandingBalance,
		RemainingBalance:          c.RemainingBalance,
		RemainingBalanceFormatted: money.FormatCurrency(c.RemainingBalance),
		Status:                    string(c.Status),
		Installments:              installments,
		Version:                   c.Version,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

func FromContracts(list []entities.BillingContract) []ContractResponse {
	out := make([]ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromContract(c))
	}
	return out
}

type ContractDetailsResponse struct {
	ContractResponse
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

func FromContractDetails(d usecase.ContractDetails) ContractDetailsResponse {
	return ContractDetailsResponse{
		ContractResponse: FromContract(d.BillingContract),
		Occurrences:      FromOccurrences(d.Occurrences),
	}
}

type OccurrenceResponse struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	Date       string    `json:"date"`
	Contact    string    `json:"contact"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromOccurrence(o entities.Occurrence) OccurrenceResponse {
	return OccurrenceResponse{
		ID:         o.ID,
		ContractID: o.ContractID,
		Date:       calendar.FormatDate(o.Date),
		Contact:    o.Contact,
		Note:       o.Note,
		CreatedAt:  o.CreatedAt,
	}
}

func FromOccurrences(list []entities.Occurrence) []OccurrenceResponse {
	out := make([]OccurrenceResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOccurrence(o))
	}
	return out
}
