package entities

import (
	"fmt"
	"time"

	"grota_financiamento/pkg/calendar"
	"grota_financiamento/pkg/money"
)

// BillingStatus is derived from the installment set and never set directly.
type BillingStatus string

const (
	BillingStatusPago     BillingStatus = "PAGO"
	BillingStatusEmAberto BillingStatus = "EM_ABERTO"
	BillingStatusEmAtraso BillingStatus = "EM_ATRASO"
)

func (s BillingStatus) Valid() bool {
	switch s {
	case BillingStatusPago, BillingStatusEmAberto, BillingStatusEmAtraso:
		return true
	}
	return false
}

// Customer is the borrower attached to a contract.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Installment is one scheduled payment. Number, DueDate and Amount are fixed at
// formalization; only Paid/PaidAt change afterwards, plus explicit due-date corrections.
type Installment struct {
	Number   int        `json:"number"`
	DueDate  time.Time  `json:"due_date"`
	Amount   float64    `json:"amount"`
	Paid     bool       `json:"paid"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
	DaysLate int        `json:"days_late"`
}

// BillingContract is a formalized financing agreement with a fixed schedule.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (proposal_id-index): proposal_id
//
// Status, RemainingBalance and Installment.DaysLate are materialized at write
// time and recomputed by Refresh on every read.
type BillingContract struct {
	ID                 string        `json:"id"`
	ProposalID         int64         `json:"proposal_id"`
	CustomerID         string        `json:"customer_id"`
	Customer           Customer      `json:"customer"`
	StartDate          time.Time     `json:"start_date"`
	PaidAt             *time.Time    `json:"paid_at,omitempty"`
	FinancedValue      float64       `json:"financed_value"`
	InstallmentValue   float64       `json:"installment_value"`
	InstallmentsTotal  int           `json:"installments_total"`
	OutstandingBalance float64       `json:"outstanding_balance"`
	RemainingBalance   float64       `json:"remaining_balance"`
	Status             BillingStatus `json:"status"`
	Installments       []Installment `json:"installments"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeContractStatus derives the contract status for the given business day.
// An empty set counts as fully paid.
func ComputeContractStatus(installments []Installment, today time.Time) BillingStatus {
	allPaid := true
	late := false
	for _, in := range installments {
		if in.Paid {
			continue
		}
		allPaid = false
		if calendar.CivilDaysBetween(in.DueDate, today) > 0 {
			late = true
		}
	}
	switch {
	case allPaid:
		return BillingStatusPago
	case late:
		return BillingStatusEmAtraso
	default:
		return BillingStatusEmAberto
	}
}

// ComputeOutstandingBalance is the original total debt: every amount, paid or not.
func ComputeOutstandingBalance(installments []Installment) float64 {
	amounts := make([]float64, 0, len(installments))
	for _, in := range installments {
		amounts = append(amounts, in.Amount)
	}
	return money.Sum(amounts...)
}

// ComputeRemainingBalance is max(0, base - paid amounts). base defaults to the
// outstanding balance of the set when nil.
func ComputeRemainingBalance(installments []Installment, outstanding *float64) float64 {
	base := ComputeOutstandingBalance(installments)
	if outstanding != nil {
		base = *outstanding
	}
	paid := []float64{base}
	for _, in := range installments {
		if in.Paid {
			paid = append(paid, -in.Amount)
		}
	}
	remaining := money.Sum(paid...)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResolveDaysLate is the number of whole business days an unpaid installment is past due.
func ResolveDaysLate(in Installment, today time.Time) int {
	if in.Paid {
		return 0
	}
	n := calendar.CivilDaysBetween(in.DueDate, today)
	if n <= 0 {
		return 0
	}
	return n
}

// Refresh recomputes every derived field for today.
func (c *BillingContract) Refresh(today time.Time) {
	for i := range c.Installments {
		c.Installments[i].DaysLate = ResolveDaysLate(c.Installments[i], today)
	}
	outstanding := c.OutstandingBalance
	c.RemainingBalance = ComputeRemainingBalance(c.Installments, &outstanding)
	c.Status = ComputeContractStatus(c.Installments, today)
}

// Installment returns a pointer into the schedule for in-place mutation.
func (c *BillingContract) Installment(number int) (*Installment, error) {
	for i := range c.Installments {
		if c.Installments[i].Number == number {
			return &c.Installments[i], nil
		}
	}
	return nil, fmt.Errorf("installment %d of contract %s: %w", number, c.ID, ErrNotFound)
}

// SetPaid flips the paid flag. PaidAt is set on false->true and cleared on
// true->false. Returns false when the installment already had that value.
func (in *Installment) SetPaid(paid bool, now time.Time) bool {
	if in.Paid == paid {
		return false
	}
	in.Paid = paid
	if paid {
		at := now
		in.PaidAt = &at
	} else {
		in.PaidAt = nil
	}
	return true
}

// Touch records a mutation at now.
func (c *BillingContract) Touch(now time.Time) {
	c.UpdatedAt = now
	c.Version++
}

// MonthlyPayment is financedValue / termMonths rounded to cents.
func MonthlyPayment(financedValue float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	return money.Split(financedValue, termMonths)[0]
}

// BuildSchedule lays out termMonths monthly installments starting at firstDue.
// The last installment absorbs the cent remainder so amounts add up to financedValue.
func BuildSchedule(financedValue float64, termMonths int, firstDue time.Time) []Installment {
	amounts := money.Split(financedValue, termMonths)
	first := calendar.Midnight(firstDue)
	out := make([]Installment, 0, len(amounts))
	for i, amount := range amounts {
		out = append(out, Installment{
			Number:  i + 1,
			DueDate: calendar.AddMonths(first, i),
			Amount:  amount,
		})
	}
	return out
}
