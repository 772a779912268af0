package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg/calendar"

	"github.com/sirupsen/logrus"
)

var (
	ErrContractNotFound      = fmt.Errorf("contract %w", entities.ErrNotFound)
	ErrInstallmentNotFound   = fmt.Errorf("installment %w", entities.ErrNotFound)
	ErrInvalidContractID     = fmt.Errorf("invalid contract id: %w", entities.ErrValidation)
	ErrContractAlreadyExists = fmt.Errorf("contract already exists for proposal: %w", entities.ErrConflict)
	ErrProposalNotApproved   = fmt.Errorf("proposal not approved: %w", entities.ErrInvalidTransition)
	ErrExportNotConfigured   = errors.New("schedule exporter not configured")
)

// FormalizeContractInput turns an approved proposal into a contract.
// Dates are YYYY-MM-DD; StartDate defaults to today and FirstDueDate to one month after it.
type FormalizeContractInput struct {
	ProposalID   int64
	StartDate    string
	FirstDueDate string
}

// PatchContractInput carries the fields PATCH /contracts/{id} may change. Nil means keep.
type PatchContractInput struct {
	PaidAt    *time.Time
	StartDate *string
}

type OccurrenceInput struct {
	Date    string
	Contact string
	Note    string
}

// ContractDetails is the contract plus its collections log.
type ContractDetails struct {
	entities.BillingContract
	Occurrences []entities.Occurrence `json:"occurrences"`
}

// IContractUseCase exposes the billing aggregate.
//
// Every read recomputes status, remaining balance and aging for today; every
// installment mutation recomputes and persists them in the same conditional write.
type IContractUseCase interface {
	FormalizeContract(ctx context.Context, in FormalizeContractInput) (entities.BillingContract, error)
	GetByID(ctx context.Context, id string) (entities.BillingContract, error)
	GetDetails(ctx context.Context, id string) (ContractDetails, error)
	List(ctx context.Context, filter interfaces.ContractFilter) ([]entities.BillingContract, error)
	PatchContract(ctx context.Context, id string, in PatchContractInput) (entities.BillingContract, error)
	SetInstallmentPaid(ctx context.Context, id string, number int, paid bool) (entities.BillingContract, error)
	UpdateInstallmentDueDate(ctx context.Context, id string, number int, newDueDate string) (entities.BillingContract, error)
	AddOccurrence(ctx context.Context, id string, in OccurrenceInput) (entities.Occurrence, error)
	ListOccurrences(ctx context.Context, id string) ([]entities.Occurrence, error)
	ExportSchedule(ctx context.Context, id string) ([]byte, error)
}

type ContractUseCase struct {
	repo        interfaces.IContractRepository
	occurrences interfaces.IOccurrenceRepository
	proposals   interfaces.IProposalRepository
	deps
}

var _ IContractUseCase = (*ContractUseCase)(nil)

func NewContractUseCase(repo interfaces.IContractRepository, occurrences interfaces.IOccurrenceRepository, proposals interfaces.IProposalRepository, opts ...Option) *ContractUseCase {
	return &ContractUseCase{repo: repo, occurrences: occurrences, proposals: proposals, deps: newDeps(opts)}
}

func (u *ContractUseCase) FormalizeContract(ctx context.Context, in FormalizeContractInput) (entities.BillingContract, error) {
	if in.ProposalID <= 0 {
		return entities.BillingContract{}, ErrInvalidProposalID
	}

	today := u.today()
	start := today
	if strings.TrimSpace(in.StartDate) != "" {
		d, err := calendar.ParseDate(in.StartDate)
		if err != nil {
			return entities.BillingContract{}, &entities.FieldError{Field: "start_date", Reason: "invalid date", Err: err}
		}
		start = d
	}
	firstDue := calendar.AddMonths(start, 1)
	if strings.TrimSpace(in.FirstDueDate) != "" {
		d, err := calendar.ParseDate(in.FirstDueDate)
		if err != nil {
			return entities.BillingContract{}, &entities.FieldError{Field: "first_due_date", Reason: "invalid date", Err: err}
		}
		firstDue = d
	}

	release, err := u.lock(ctx, "proposal", in.ProposalID)
	if err != nil {
		return entities.BillingContract{}, err
	}
	defer release()

	p, err := u.proposals.GetByID(ctx, in.ProposalID)
	if err != nil {
		return entities.BillingContract{}, err
	}
	if p.ID == 0 {
		return entities.BillingContract{}, ErrProposalNotFound
	}
	if p.Status != entities.ProposalStatusApproved {
		return entities.BillingContract{}, fmt.Errorf("proposal %d is %s: %w", p.ID, p.Status, ErrProposalNotApproved)
	}

	// Enforce: 1 contract per proposal.
	if existing, err := u.repo.GetByProposalID(ctx, p.ID); err != nil {
		return entities.BillingContract{}, err
	} else if existing.ID != "" {
		return entities.BillingContract{}, ErrContractAlreadyExists
	}

	now := u.now()
	installments := entities.BuildSchedule(p.FinancedValue, p.TermMonths, firstDue)
	c := entities.BillingContract{
		ID:         newID(),
		ProposalID: p.ID,
		CustomerID: p.CustomerCPF,
		Customer: entities.Customer{
			ID:    p.CustomerCPF,
			Name:  p.CustomerName,
			CPF:   p.CustomerCPF,
			Email: p.CustomerEmail,
			Phone: p.CustomerPhone,
		},
		StartDate:          start,
		FinancedValue:      p.FinancedValue,
		InstallmentValue:   entities.MonthlyPayment(p.FinancedValue, p.TermMonths),
		InstallmentsTotal:  len(installments),
		OutstandingBalance: entities.ComputeOutstandingBalance(installments),
		Installments:       installments,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	c.Refresh(today)

	if err := u.repo.Create(ctx, c); err != nil {
		logger.LogError("contract", "FormalizeContract", "create", map[string]any{"proposal_id": p.ID}, err)
		return entities.BillingContract{}, err
	}
	logger.Get().WithFields(logrus.Fields{
		"contract_id":  c.ID,
		"proposal_id":  p.ID,
		"installments": c.InstallmentsTotal,
	}).Info("[contract][usecase] formalized")
	return c, nil
}

func (u *ContractUseCase) GetByID(ctx context.Context, id string) (entities.BillingContract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingContract{}, ErrInvalidContractID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingContract{}, err
	}
	if c.ID == "" {
		return entities.BillingContract{}, ErrContractNotFound
	}
	c.Refresh(u.today())
	return c, nil
}

func (u *ContractUseCase) GetDetails(ctx context.Context, id string) (ContractDetails, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return ContractDetails{}, err
	}
	occ, err := u.occurrences.ListByContractID(ctx, c.ID)
	if err != nil {
		return ContractDetails{}, err
	}
	sortOccurrences(occ)
	return ContractDetails{BillingContract: c, Occurrences: occ}, nil
}

func (u *ContractUseCase) List(ctx context.Context, filter interfaces.ContractFilter) ([]entities.BillingContract, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("invalid billing status: %w", entities.ErrValidation)
	}
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := u.today()
	out := make([]entities.BillingContract, 0, len(all))
	for _, c := range all {
		c.Refresh(today)
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *ContractUseCase) PatchContract(ctx context.Context, id string, in PatchContractInput) (entities.BillingContract, error) {
	var start *time.Time
	if in.StartDate != nil {
		d, err := calendar.ParseDate(*in.StartDate)
		if err != nil {
			return entities.BillingContract{}, &entities.FieldError{Field: "start_date", Reason: "invalid date", Err: err}
		}
		start = &d
	}

	return u.mutate(ctx, id, func(c *entities.BillingContract) (bool, error) {
		changed := false
		if in.PaidAt != nil && (c.PaidAt == nil || !c.PaidAt.Equal(*in.PaidAt)) {
			at := in.PaidAt.UTC()
			c.PaidAt = &at
			changed = true
		}
		if start != nil && !c.StartDate.Equal(*start) {
			c.StartDate = *start
			changed = true
		}
		return changed, nil
	})
}

// SetInstallmentPaid flips one installment; setting the value it already has is a no-op.
func (u *ContractUseCase) SetInstallmentPaid(ctx context.Context, id string, number int, paid bool) (entities.BillingContract, error) {
	return u.mutate(ctx, id, func(c *entities.BillingContract) (bool, error) {
		in, err := c.Installment(number)
		if err != nil {
			return false, ErrInstallmentNotFound
		}
		now := u.now()
		if !in.SetPaid(paid, now) {
			return false, nil
		}
		// paidAt follows the derived status: stamped on reaching PAGO, cleared on leaving it.
		if entities.ComputeContractStatus(c.Installments, u.today()) == entities.BillingStatusPago {
			if c.PaidAt == nil {
				c.PaidAt = &now
			}
		} else {
			c.PaidAt = nil
		}
		return true, nil
	})
}

// UpdateInstallmentDueDate corrects a due date; number, amount and payment state stay as they are.
func (u *ContractUseCase) UpdateInstallmentDueDate(ctx context.Context, id string, number int, newDueDate string) (entities.BillingContract, error) {
	due, err := calendar.ParseDate(newDueDate)
	if err != nil {
		return entities.BillingContract{}, &entities.FieldError{Field: "due_date", Reason: "invalid date", Err: err}
	}

	return u.mutate(ctx, id, func(c *entities.BillingContract) (bool, error) {
		in, err := c.Installment(number)
		if err != nil {
			return false, ErrInstallmentNotFound
		}
		if in.DueDate.Equal(due) {
			return false, nil
		}
		in.DueDate = due
		return true, nil
	})
}

// mutate runs a locked read-modify-write on the contract, re-deriving status
// before the conditional write. change reports whether anything changed.
func (u *ContractUseCase) mutate(ctx context.Context, id string, change func(c *entities.BillingContract) (bool, error)) (entities.BillingContract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingContract{}, ErrInvalidContractID
	}
	release, err := u.lock(ctx, "contract", id)
	if err != nil {
		return entities.BillingContract{}, err
	}
	defer release()

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingContract{}, err
	}
	if c.ID == "" {
		return entities.BillingContract{}, ErrContractNotFound
	}

	expected := c.Version
	changed, err := change(&c)
	if err != nil {
		return entities.BillingContract{}, err
	}
	today := u.today()
	c.Refresh(today)
	if !changed {
		return c, nil
	}

	c.Touch(u.now())
	if err := u.repo.Update(ctx, c, expected); err != nil {
		if errors.Is(err, entities.ErrConflict) {
			logger.Get().WithFields(logrus.Fields{"contract_id": id, "expected_version": expected}).Warn("[contract][usecase] concurrent update rejected")
		} else {
			logger.LogError("contract", "mutate", "update", map[string]any{"contract_id": id}, err)
		}
		return entities.BillingContract{}, err
	}
	logger.Get().WithFields(logrus.Fields{
		"contract_id": id,
		"status":      c.Status,
		"remaining":   c.RemainingBalance,
	}).Info("[contract][usecase] updated")
	return c, nil
}

func (u *ContractUseCase) AddOccurrence(ctx context.Context, id string, in OccurrenceInput) (entities.Occurrence, error) {
	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return entities.Occurrence{}, &entities.FieldError{Field: "date", Reason: "invalid date", Err: err}
	}
	contact := strings.TrimSpace(in.Contact)
	if contact == "" {
		return entities.Occurrence{}, &entities.FieldError{Field: "contact", Reason: "required"}
	}
	note := strings.TrimSpace(in.Note)
	if note == "" {
		return entities.Occurrence{}, &entities.FieldError{Field: "note", Reason: "required"}
	}

	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Occurrence{}, err
	}

	o := entities.Occurrence{
		ID:         newID(),
		ContractID: c.ID,
		Date:       date,
		Contact:    contact,
		Note:       note,
		CreatedAt:  u.now(),
	}
	if err := u.occurrences.Create(ctx, o); err != nil {
		logger.LogError("contract", "AddOccurrence", "create", map[string]any{"contract_id": c.ID}, err)
		return entities.Occurrence{}, err
	}
	logger.Get().WithFields(logrus.Fields{"contract_id": c.ID, "occurrence_id": o.ID}).Info("[contract][usecase] occurrence added")
	return o, nil
}

func (u *ContractUseCase) ListOccurrences(ctx context.Context, id string) ([]entities.Occurrence, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	occ, err := u.occurrences.ListByContractID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	sortOccurrences(occ)
	return occ, nil
}

// sortOccurrences orders newest first by date, then creation time.
func sortOccurrences(occ []entities.Occurrence) {
	sort.SliceStable(occ, func(i, j int) bool {
		if occ[i].Date.Equal(occ[j].Date) {
			return occ[i].CreatedAt.After(occ[j].CreatedAt)
		}
		return occ[i].Date.After(occ[j].Date)
	})
}

// ExportSchedule renders the refreshed installment schedule as an .xlsx workbook.
func (u *ContractUseCase) ExportSchedule(ctx context.Context, id string) ([]byte, error) {
	if u.exporter == nil {
		return nil, ErrExportNotConfigured
	}
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := u.exporter.ExportSchedule(c)
	if err != nil {
		logger.LogError("contract", "ExportSchedule", "render", map[string]any{"contract_id": c.ID}, err)
		return nil, err
	}
	return out, nil
}
