package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"
	mock_interfaces "grota_financiamento/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProposalUseCase_CreateProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes input and records CREATED", func(t *testing.T) {
		f := newFixture()
		p, err := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != 1 || p.Status != entities.ProposalStatusSubmitted || p.Version != 1 {
			t.Fatalf("unexpected proposal: %+v", p)
		}
		if p.CustomerName != "Maria Silva" || p.CustomerCPF != "52998224725" || p.VehiclePlate != "ABC1D23" {
			t.Fatalf("input not normalized: %+v", p)
		}
		events, err := f.timeline.GetTimeline(ctx, p.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 1 || events[0].Type != entities.ProposalEventCreated || events[0].Actor != "dealer-1" {
			t.Fatalf("unexpected timeline: %+v", events)
		}
		if events[0].StatusTo == nil || *events[0].StatusTo != entities.ProposalStatusSubmitted {
			t.Fatalf("expected statusTo SUBMITTED, got %+v", events[0].StatusTo)
		}
	})

	t.Run("zero financed value is InvalidAmount", func(t *testing.T) {
		f := newFixture()
		in := validProposalInput()
		in.FinancedValue = 0
		_, err := f.proposals.CreateProposal(ctx, in, "dealer-1")
		if !errors.Is(err, entities.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(in *CreateProposalInput)
		field  string
	}{
		{"missing name", func(in *CreateProposalInput) { in.CustomerName = "  " }, "customer_name"},
		{"invalid cpf", func(in *CreateProposalInput) { in.CustomerCPF = "111.111.111-11" }, "customer_cpf"},
		{"zero term", func(in *CreateProposalInput) { in.TermMonths = 0 }, "term_months"},
		{"negative fipe", func(in *CreateProposalInput) { in.FipeValue = -1 }, "fipe_value"},
		{"missing plate", func(in *CreateProposalInput) { in.VehiclePlate = "" }, "vehicle_plate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := validProposalInput()
			tc.mutate(&in)
			_, err := f.proposals.CreateProposal(ctx, in, "dealer-1")
			var fe *entities.FieldError
			if !errors.As(err, &fe) || fe.Field != tc.field {
				t.Fatalf("expected field error on %s, got %v", tc.field, err)
			}
			if !errors.Is(err, entities.ErrValidation) && !errors.Is(err, entities.ErrInvalidAmount) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	t.Run("fipe lookup fills missing value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vehicles := mock_interfaces.NewMockIVehicleLookup(ctrl)
		vehicles.EXPECT().LookupFipe(gomock.Any(), "001234-5").Return(entities.FipeQuote{Code: "001234-5", Value: 68500}, nil)

		f := newFixture(WithVehicleLookup(vehicles))
		in := validProposalInput()
		in.FipeValue = 0
		p, err := f.proposals.CreateProposal(ctx, in, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.FipeValue != 68500 {
			t.Fatalf("expected fipe value from lookup, got %v", p.FipeValue)
		}
	})

	t.Run("fipe lookup failure keeps manual entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vehicles := mock_interfaces.NewMockIVehicleLookup(ctrl)
		vehicles.EXPECT().LookupFipe(gomock.Any(), gomock.Any()).Return(entities.FipeQuote{}, entities.ErrUpstreamUnavailable)

		f := newFixture(WithVehicleLookup(vehicles))
		in := validProposalInput()
		in.FipeValue = 0
		p, err := f.proposals.CreateProposal(ctx, in, "")
		if err != nil {
			t.Fatalf("lookup failure must not block submission: %v", err)
		}
		if p.FipeValue != 0 {
			t.Fatalf("expected zero fipe value, got %v", p.FipeValue)
		}
	})

	t.Run("publishes PROPOSAL_CREATED and survives publisher failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := mock_interfaces.NewMockIRealtimePublisher(ctrl)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev entities.RealtimeEvent) error {
			if ev.Name != entities.RealtimeProposalCreated || ev.Source != "node-a" || ev.Proposal == nil {
				t.Fatalf("unexpected realtime event: %+v", ev)
			}
			return errors.New("pubsub down")
		})

		f := newFixture(WithPublisher(pub), WithSource("node-a"))
		if _, err := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1"); err != nil {
			t.Fatalf("publish failure must not fail the operation: %v", err)
		}
	})
}

func TestProposalUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("SUBMITTED to APPROVED appends one STATUS_UPDATED", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		f.clock.Set(baseNow.Add(time.Hour))

		got, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusApproved, "admin-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.ProposalStatusApproved || got.Version != 2 || !got.UpdatedAt.Equal(baseNow.Add(time.Hour)) {
			t.Fatalf("unexpected proposal: %+v", got)
		}
		events, _ := f.timeline.GetTimeline(ctx, p.ID)
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		ev := events[1]
		if ev.Type != entities.ProposalEventStatusUpdated || *ev.StatusFrom != entities.ProposalStatusSubmitted || *ev.StatusTo != entities.ProposalStatusApproved || ev.Actor != "admin-1" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	})

	t.Run("unknown proposal is NotFound", func(t *testing.T) {
		f := newFixture()
		_, err := f.proposals.UpdateStatus(ctx, 9999, entities.ProposalStatusApproved, "admin-1", nil)
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("identical status is a no-op", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		f.clock.Set(baseNow.Add(time.Hour))

		got, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusSubmitted, "admin-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.UpdatedAt.Equal(p.UpdatedAt) || got.Version != p.Version {
			t.Fatalf("no-op must not touch the record: before=%+v after=%+v", p, got)
		}
		events, _ := f.timeline.GetTimeline(ctx, p.ID)
		if len(events) != 1 {
			t.Fatalf("no-op must not append events, got %d", len(events))
		}
	})

	t.Run("disallowed transition carries context", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		_, _ = f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusApproved, "admin-1", nil)

		_, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusPending, "admin-1", nil)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		var te *entities.TransitionError
		if !errors.As(err, &te) || te.ProposalID != p.ID || te.From != entities.ProposalStatusApproved || te.To != entities.ProposalStatusPending {
			t.Fatalf("unexpected transition error: %+v", te)
		}
	})

	t.Run("PAID is never reachable", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		_, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusPaid, "admin-1", nil)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("note travels with the transition", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		note := " falta comprovante de renda "
		got, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusPending, "admin-1", &note)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Notes != "falta comprovante de renda" {
			t.Fatalf("unexpected notes %q", got.Notes)
		}
	})

	t.Run("missing actor", func(t *testing.T) {
		f := newFixture()
		_, err := f.proposals.UpdateStatus(ctx, 1, entities.ProposalStatusApproved, " ", nil)
		if !errors.Is(err, ErrInvalidActor) {
			t.Fatalf("expected ErrInvalidActor, got %v", err)
		}
	})
}

func TestProposalUseCase_EventOrderSurvivesClockSkew(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")

	// the writer's clock runs behind the previous writer
	f.clock.Set(baseNow.Add(-5 * time.Minute))
	if _, err := f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusPending, "admin-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.proposals.UpdateNote(ctx, p.ID, "aguardando documentos", "admin-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, _ := f.timeline.GetTimeline(ctx, p.ID)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].CreatedAt.Before(events[i-1].CreatedAt) {
			t.Fatalf("timeline regressed at %d: %v < %v", i, events[i].CreatedAt, events[i-1].CreatedAt)
		}
		if events[i].Seq != events[i-1].Seq+1 {
			t.Fatalf("seq not contiguous at %d", i)
		}
	}
}

func TestProposalUseCase_UpdateNoteAndAssignDealer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
	_, _ = f.proposals.UpdateStatus(ctx, p.ID, entities.ProposalStatusRejected, "admin-1", nil)

	got, err := f.proposals.UpdateNote(ctx, p.ID, "score insuficiente", "admin-1")
	if err != nil {
		t.Fatalf("note must be allowed in any status: %v", err)
	}
	if got.Status != entities.ProposalStatusRejected || got.Notes != "score insuficiente" {
		t.Fatalf("unexpected proposal: %+v", got)
	}
	again, _ := f.proposals.UpdateNote(ctx, p.ID, "score insuficiente", "admin-1")
	if again.Version != got.Version {
		t.Fatalf("identical note must be a no-op")
	}

	dealer, seller := "loja-7", "vend-3"
	got, err = f.proposals.AssignDealer(ctx, p.ID, &dealer, &seller, "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DealerID == nil || *got.DealerID != "loja-7" || got.SellerID == nil || *got.SellerID != "vend-3" {
		t.Fatalf("unexpected assignment: %+v", got)
	}
	events, _ := f.timeline.GetTimeline(ctx, p.ID)
	last := events[len(events)-1]
	if last.Type != entities.ProposalEventNoteAdded || last.Note != "lojista: loja-7; vendedor: vend-3" {
		t.Fatalf("unexpected assignment event: %+v", last)
	}

	list, _ := f.proposals.List(ctx, interfaces.ProposalFilter{DealerID: "loja-7"})
	if len(list) != 1 {
		t.Fatalf("expected proposal under dealer filter, got %d", len(list))
	}
	if _, err := f.proposals.List(ctx, interfaces.ProposalFilter{Status: "BOGUS"}); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error for bogus status, got %v", err)
	}
}

func TestProposalUseCase_DeleteProposal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")

	if err := f.proposals.DeleteProposal(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.proposals.DeleteProposal(ctx, p.ID); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.timeline.GetTimeline(ctx, p.ID); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected timeline NotFound after delete, got %v", err)
	}
}

func TestProposalUseCase_ApplyRemoteSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(WithSource("node-a"))
	p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")

	remote := p
	remote.Status = entities.ProposalStatusApproved

	t.Run("own echo is ignored", func(t *testing.T) {
		remote.UpdatedAt = p.UpdatedAt.Add(time.Minute)
		applied, err := f.proposals.ApplyRemoteSnapshot(ctx, remote, "node-a")
		if err != nil || applied {
			t.Fatalf("expected echo to be ignored, applied=%v err=%v", applied, err)
		}
	})

	t.Run("stale snapshot never regresses local state", func(t *testing.T) {
		remote.UpdatedAt = p.UpdatedAt.Add(-time.Minute)
		applied, err := f.proposals.ApplyRemoteSnapshot(ctx, remote, "node-b")
		if err != nil || applied {
			t.Fatalf("expected stale snapshot to be dropped, applied=%v err=%v", applied, err)
		}
		got, _ := f.proposals.GetByID(ctx, p.ID)
		if got.Status != entities.ProposalStatusSubmitted {
			t.Fatalf("local state regressed: %s", got.Status)
		}
	})

	t.Run("equal or newer snapshot is applied", func(t *testing.T) {
		remote.UpdatedAt = p.UpdatedAt
		applied, err := f.proposals.ApplyRemoteSnapshot(ctx, remote, "node-b")
		if err != nil || !applied {
			t.Fatalf("expected snapshot applied, applied=%v err=%v", applied, err)
		}
		got, _ := f.proposals.GetByID(ctx, p.ID)
		if got.Status != entities.ProposalStatusApproved {
			t.Fatalf("expected APPROVED, got %s", got.Status)
		}
	})

	t.Run("unknown local id is created", func(t *testing.T) {
		other := remote
		other.ID = 500
		applied, err := f.proposals.ApplyRemoteSnapshot(ctx, other, "node-b")
		if err != nil || !applied {
			t.Fatalf("expected snapshot applied, applied=%v err=%v", applied, err)
		}
	})

	t.Run("missing updatedAt is InvalidDate", func(t *testing.T) {
		other := remote
		other.UpdatedAt = time.Time{}
		_, err := f.proposals.ApplyRemoteSnapshot(ctx, other, "node-b")
		if !errors.Is(err, entities.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestProposalUseCase_ConcurrencyGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("lock held elsewhere surfaces Conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		locker := mock_interfaces.NewMockIEntityLocker(ctrl)
		locker.EXPECT().Lock(gomock.Any(), "proposal:1").Return(nil, entities.ErrConflict)

		f := newFixture(WithLocker(locker))
		_, err := f.proposals.UpdateStatus(ctx, 1, entities.ProposalStatusApproved, "admin-1", nil)
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("stale version loses the compare-and-swap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		events := mock_interfaces.NewMockIProposalEventRepository(ctrl)
		uc := NewProposalUseCase(repo, events, WithClock(&stepClock{at: baseNow}))

		current := entities.Proposal{ID: 42, Status: entities.ProposalStatusSubmitted, Version: 3, UpdatedAt: baseNow.Add(-time.Hour)}
		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		events.EXPECT().Last(gomock.Any(), int64(42)).Return(entities.ProposalEvent{ID: "e", Seq: 4, CreatedAt: baseNow.Add(-time.Hour)}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(3), gomock.Len(1)).DoAndReturn(
			func(_ context.Context, p entities.Proposal, _ int64, evs []entities.ProposalEvent) error {
				if p.Version != 4 || evs[0].Seq != 5 {
					t.Fatalf("unexpected write: version=%d seq=%d", p.Version, evs[0].Seq)
				}
				return entities.ErrConflict
			})

		_, err := uc.UpdateStatus(ctx, 42, entities.ProposalStatusApproved, "admin-1", nil)
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}
