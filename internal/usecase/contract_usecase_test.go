package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"
	mock_interfaces "grota_financiamento/internal/usecase/interfaces/mocks"
	"grota_financiamento/pkg/calendar"

	"go.uber.org/mock/gomock"
)

// seedLateContract stores the two-installment contract used across billing scenarios:
// #1 due 2024-01-10 paid, #2 due 2024-02-10 open; today is 2024-03-01.
func seedLateContract(t *testing.T, f *fixture) entities.BillingContract {
	t.Helper()
	paidAt := time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC)
	c := entities.BillingContract{
		ID:                 "ctr-1",
		ProposalID:         42,
		CustomerID:         "52998224725",
		StartDate:          calendar.Date(2023, 12, 10),
		FinancedValue:      1000,
		InstallmentValue:   500,
		InstallmentsTotal:  2,
		OutstandingBalance: 1000,
		Installments: []entities.Installment{
			{Number: 1, DueDate: calendar.Date(2024, 1, 10), Amount: 500, Paid: true, PaidAt: &paidAt},
			{Number: 2, DueDate: calendar.Date(2024, 2, 10), Amount: 500},
		},
		Version:   1,
		CreatedAt: baseNow.Add(-60 * 24 * time.Hour),
		UpdatedAt: baseNow.Add(-60 * 24 * time.Hour),
	}
	if err := f.store.Contracts().Create(context.Background(), c); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

func TestContractUseCase_BillingScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seedLateContract(t, f)

	c, err := f.contracts.GetByID(ctx, "ctr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != entities.BillingStatusEmAtraso || c.Installments[1].DaysLate != 20 || c.RemainingBalance != 500 {
		t.Fatalf("unexpected derived state: status=%s daysLate=%d remaining=%v", c.Status, c.Installments[1].DaysLate, c.RemainingBalance)
	}

	c, err = f.contracts.SetInstallmentPaid(ctx, "ctr-1", 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != entities.BillingStatusPago || c.RemainingBalance != 0 || c.Installments[1].DaysLate != 0 {
		t.Fatalf("unexpected state after payment: %+v", c)
	}
	if c.Installments[1].PaidAt == nil || !c.Installments[1].PaidAt.Equal(baseNow) || c.PaidAt == nil {
		t.Fatalf("paidAt not recorded: %+v", c)
	}
	if c.Version != 2 {
		t.Fatalf("expected version 2, got %d", c.Version)
	}

	stored, _ := f.store.Contracts().GetByID(ctx, "ctr-1")
	if stored.Status != entities.BillingStatusPago {
		t.Fatalf("derived status not persisted: %s", stored.Status)
	}
}

func TestContractUseCase_SetInstallmentPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("same value is a no-op", func(t *testing.T) {
		f := newFixture()
		seedLateContract(t, f)
		f.clock.Set(baseNow.Add(time.Hour))

		c, err := f.contracts.SetInstallmentPaid(ctx, "ctr-1", 1, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Version != 1 || !c.Installments[0].PaidAt.Equal(time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC)) {
			t.Fatalf("no-op changed the contract: %+v", c)
		}
	})

	t.Run("unpaying clears paidAt", func(t *testing.T) {
		f := newFixture()
		seedLateContract(t, f)
		c, err := f.contracts.SetInstallmentPaid(ctx, "ctr-1", 1, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Installments[0].Paid || c.Installments[0].PaidAt != nil || c.RemainingBalance != 1000 {
			t.Fatalf("unexpected state: %+v", c.Installments[0])
		}
		if c.Installments[0].DaysLate != calendar.CivilDaysBetween(calendar.Date(2024, 1, 10), calendar.Date(2024, 3, 1)) {
			t.Fatalf("unexpected aging %d", c.Installments[0].DaysLate)
		}
	})

	t.Run("contract paidAt follows PAGO", func(t *testing.T) {
		f := newFixture()
		seedLateContract(t, f)

		c, err := f.contracts.SetInstallmentPaid(ctx, "ctr-1", 2, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.BillingStatusPago || c.PaidAt == nil || !c.PaidAt.Equal(baseNow) {
			t.Fatalf("expected PAGO with paidAt, got %s %v", c.Status, c.PaidAt)
		}

		f.clock.Set(baseNow.Add(time.Hour))
		c, err = f.contracts.SetInstallmentPaid(ctx, "ctr-1", 2, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.BillingStatusEmAtraso || c.PaidAt != nil {
			t.Fatalf("expected EM_ATRASO without paidAt, got %s %v", c.Status, c.PaidAt)
		}
		stored, _ := f.contracts.GetByID(ctx, "ctr-1")
		if stored.PaidAt != nil {
			t.Fatalf("stored contract kept paidAt %v", stored.PaidAt)
		}
	})

	t.Run("missing contract and installment", func(t *testing.T) {
		f := newFixture()
		seedLateContract(t, f)
		if _, err := f.contracts.SetInstallmentPaid(ctx, "nope", 1, true); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := f.contracts.SetInstallmentPaid(ctx, "ctr-1", 9, true); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("concurrent writer wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIContractRepository(ctrl)
		uc := NewContractUseCase(repo, nil, nil, WithClock(calendar.FixedClock{At: baseNow}))

		repo.EXPECT().GetByID(gomock.Any(), "ctr-1").Return(entities.BillingContract{
			ID:           "ctr-1",
			Version:      5,
			Installments: []entities.Installment{{Number: 1, DueDate: calendar.Date(2024, 4, 10), Amount: 10}},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(5)).Return(entities.ErrConflict)

		if _, err := uc.SetInstallmentPaid(ctx, "ctr-1", 1, true); !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestContractUseCase_UpdateInstallmentDueDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seedLateContract(t, f)

	if _, err := f.contracts.UpdateInstallmentDueDate(ctx, "ctr-1", 2, "2024-02-30"); !errors.Is(err, entities.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	c, err := f.contracts.UpdateInstallmentDueDate(ctx, "ctr-1", 2, "2024-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := c.Installments[1]
	if !in.DueDate.Equal(calendar.Date(2024, 3, 15)) || in.Number != 2 || in.Amount != 500 || in.Paid {
		t.Fatalf("only dueDate may change: %+v", in)
	}
	if c.Status != entities.BillingStatusEmAberto || in.DaysLate != 0 {
		t.Fatalf("expected EM_ABERTO after correction, got %s (%d)", c.Status, in.DaysLate)
	}
}

func TestContractUseCase_FormalizeContract(t *testing.T) {
	ctx := context.Background()

	newApproved := func(t *testing.T, f *fixture, financed float64, term int) entities.Proposal {
		t.Helper()
		in := validProposalInput()
		in.FinancedValue = financed
		in.TermMonths = term
		p, err := f.proposals.CreateProposal(ctx, in, "dealer-1")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		p, err = f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusApproved, "admin-1", nil)
		if err != nil {
			t.Fatalf("approve: %v", err)
		}
		return p
	}

	t.Run("builds the schedule", func(t *testing.T) {
		f := newFixture()
		p := newApproved(t, f, 1000, 3)

		c, err := f.contracts.FormalizeContract(ctx, FormalizeContractInput{ProposalID: p.ID, StartDate: "2024-03-31"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Installments) != 3 || c.InstallmentsTotal != 3 || c.InstallmentValue != 333.33 {
			t.Fatalf("unexpected schedule: %+v", c)
		}
		if c.Installments[2].Amount != 333.34 || c.OutstandingBalance != 1000 {
			t.Fatalf("last installment must absorb the remainder: %+v", c.Installments)
		}
		wantDue := []string{"2024-04-30", "2024-05-30", "2024-06-30"}
		for i, w := range wantDue {
			if got := calendar.FormatDate(c.Installments[i].DueDate); got != w {
				t.Fatalf("installment %d due %s, want %s", i+1, got, w)
			}
		}
		if c.Status != entities.BillingStatusEmAberto || c.Customer.Email != "maria@example.com" {
			t.Fatalf("unexpected contract: %+v", c)
		}

		if _, err := f.contracts.FormalizeContract(ctx, FormalizeContractInput{ProposalID: p.ID}); !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict on second formalization, got %v", err)
		}
	})

	t.Run("proposal must be approved", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		_, err := f.contracts.FormalizeContract(ctx, FormalizeContractInput{ProposalID: p.ID})
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("unknown proposal and bad dates", func(t *testing.T) {
		f := newFixture()
		if _, err := f.contracts.FormalizeContract(ctx, FormalizeContractInput{ProposalID: 8}); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := f.contracts.FormalizeContract(ctx, FormalizeContractInput{ProposalID: 8, FirstDueDate: "10/02/2024"}); !errors.Is(err, entities.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestContractUseCase_ListAndPatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seedLateContract(t, f)
	_ = f.store.Contracts().Create(ctx, entities.BillingContract{
		ID:           "ctr-2",
		ProposalID:   43,
		Version:      1,
		CreatedAt:    baseNow,
		Installments: []entities.Installment{{Number: 1, DueDate: calendar.Date(2024, 4, 1), Amount: 100}},
	})

	late, err := f.contracts.List(ctx, interfaces.ContractFilter{Status: entities.BillingStatusEmAtraso})
	if err != nil || len(late) != 1 || late[0].ID != "ctr-1" {
		t.Fatalf("unexpected late list: %v %v", late, err)
	}
	all, _ := f.contracts.List(ctx, interfaces.ContractFilter{})
	if len(all) != 2 || all[0].ID != "ctr-2" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if _, err := f.contracts.List(ctx, interfaces.ContractFilter{Status: "QUITADO"}); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	start := "2023-12-15"
	c, err := f.contracts.PatchContract(ctx, "ctr-1", PatchContractInput{StartDate: &start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calendar.FormatDate(c.StartDate) != "2023-12-15" || c.Version != 2 {
		t.Fatalf("unexpected patch result: %+v", c)
	}
	bad := "15/12/2023"
	if _, err := f.contracts.PatchContract(ctx, "ctr-1", PatchContractInput{StartDate: &bad}); !errors.Is(err, entities.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestContractUseCase_Occurrences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seedLateContract(t, f)

	if _, err := f.contracts.AddOccurrence(ctx, "ctr-1", OccurrenceInput{Date: "2024-02-20", Contact: "cliente", Note: "prometeu pagar"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.clock.Set(baseNow.Add(time.Minute))
	if _, err := f.contracts.AddOccurrence(ctx, "ctr-1", OccurrenceInput{Date: "2024-02-25", Contact: "avalista", Note: "sem retorno"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.contracts.AddOccurrence(ctx, "ctr-1", OccurrenceInput{Date: "2024-02-25", Contact: " ", Note: "x"}); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.contracts.AddOccurrence(ctx, "ghost", OccurrenceInput{Date: "2024-02-25", Contact: "a", Note: "x"}); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	details, err := f.contracts.GetDetails(ctx, "ctr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.Occurrences) != 2 || details.Occurrences[0].Contact != "avalista" {
		t.Fatalf("expected newest first, got %+v", details.Occurrences)
	}
	if details.Status != entities.BillingStatusEmAtraso {
		t.Fatalf("details must carry derived status, got %s", details.Status)
	}
}

func TestContractUseCase_ExportSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		f := newFixture()
		if _, err := f.contracts.ExportSchedule(ctx, "ctr-1"); !errors.Is(err, ErrExportNotConfigured) {
			t.Fatalf("expected ErrExportNotConfigured, got %v", err)
		}
	})

	t.Run("renders refreshed contract", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		exporter := mock_interfaces.NewMockIScheduleExporter(ctrl)
		f := newFixture(WithScheduleExporter(exporter))
		seedLateContract(t, f)

		exporter.EXPECT().ExportSchedule(gomock.Any()).DoAndReturn(func(c entities.BillingContract) ([]byte, error) {
			if c.Status != entities.BillingStatusEmAtraso {
				t.Fatalf("exporter must receive derived status, got %s", c.Status)
			}
			return []byte("xlsx"), nil
		})
		out, err := f.contracts.ExportSchedule(ctx, "ctr-1")
		if err != nil || string(out) != "xlsx" {
			t.Fatalf("unexpected export: %q %v", out, err)
		}
	})
}
