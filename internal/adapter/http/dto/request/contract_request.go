package request

import (
	"time"

	"grota_financiamento/internal/usecase"
)

type FormalizeContractRequest struct {
	ProposalID   int64  `json:"proposalId" binding:"required,gt=0"`
	StartDate    string `json:"startDate" binding:"omitempty,yyyymmdd"`
	FirstDueDate string `json:"firstDueDate" binding:"required,yyyymmdd"`
}

func (r FormalizeContractRequest) ToInput() usecase.FormalizeContractInput {
	return usecase.FormalizeContractInput{ProposalID: r.ProposalID, StartDate: r.StartDate, FirstDueDate: r.FirstDueDate}
}

// PatchContractRequest is a partial update; absent fields are left untouched.
type PatchContractRequest struct {
	PaidAt    *time.Time `json:"paidAt"`
	StartDate *string    `json:"startDate" binding:"omitempty,yyyymmdd"`
}

func (r PatchContractRequest) ToInput() usecase.PatchContractInput {
	return usecase.PatchContractInput{PaidAt: r.PaidAt, StartDate: r.StartDate}
}

type InstallmentPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

type InstallmentDueDateRequest struct {
	DueDate string `json:"dueDate" binding:"required,yyyymmdd"`
}

type OccurrenceRequest struct {
	Date    string `json:"date" binding:"required,yyyymmdd"`
	Contact string `json:"contact" binding:"required"`
	Note    string `json:"note" binding:"required"`
}

func (r OccurrenceRequest) ToInput() usecase.OccurrenceInput {
	return usecase.OccurrenceInput{Date: r.Date, Contact: r.Contact, Note: r.Note}
}
