package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"grota_financiamento/internal/domain/entities"
	mock_interfaces "grota_financiamento/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestTimelineUseCase_AppendEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps id, seq and createdAt", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		f.clock.Set(baseNow.Add(2 * time.Minute))

		ev, err := f.timeline.AppendEvent(ctx, p.ID, entities.ProposalEventNoteAdded, entities.EventFields{Actor: " admin-1 ", Note: " ligar amanhã "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.ID == "" || ev.Seq != 2 || !ev.CreatedAt.Equal(baseNow.Add(2*time.Minute)) || ev.Actor != "admin-1" || ev.Note != "ligar amanhã" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	})

	validation := []struct {
		name   string
		id     int64
		typ    entities.ProposalEventType
		fields entities.EventFields
		want   error
	}{
		{"invalid id", 0, entities.ProposalEventNoteAdded, entities.EventFields{Actor: "a"}, ErrInvalidProposalID},
		{"invalid type", 1, "BOGUS", entities.EventFields{Actor: "a"}, ErrInvalidEventType},
		{"missing actor", 1, entities.ProposalEventNoteAdded, entities.EventFields{}, ErrInvalidActor},
		{"status update without statuses", 1, entities.ProposalEventStatusUpdated, entities.EventFields{Actor: "a"}, ErrEventTypeNotAppendable},
		{"status on note", 1, entities.ProposalEventNoteAdded, entities.EventFields{Actor: "a", StatusTo: entities.StatusPtr(entities.ProposalStatusApproved)}, entities.ErrValidation},
		{"status update with statuses", 1, entities.ProposalEventStatusUpdated, entities.EventFields{
			Actor:      "a",
			StatusFrom: entities.StatusPtr(entities.ProposalStatusSubmitted),
			StatusTo:   entities.StatusPtr(entities.ProposalStatusApproved),
		}, ErrEventTypeNotAppendable},
		{"status update with unknown statuses", 1, entities.ProposalEventStatusUpdated, entities.EventFields{
			Actor:      "a",
			StatusFrom: entities.StatusPtr("BOGUS"),
			StatusTo:   entities.StatusPtr("NOPE"),
		}, ErrEventTypeNotAppendable},
		{"second CREATED", 1, entities.ProposalEventCreated, entities.EventFields{Actor: "a"}, ErrEventTypeNotAppendable},
	}
	for _, tc := range validation {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.timeline.AppendEvent(ctx, tc.id, tc.typ, tc.fields)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("rejected appends leave the timeline untouched", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")

		_, err := f.timeline.AppendEvent(ctx, p.ID, entities.ProposalEventStatusUpdated, entities.EventFields{
			Actor:      "admin-1",
			StatusFrom: entities.StatusPtr(entities.ProposalStatusSubmitted),
			StatusTo:   entities.StatusPtr(entities.ProposalStatusApproved),
		})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if _, err := f.timeline.AppendEvent(ctx, p.ID, entities.ProposalEventCreated, entities.EventFields{Actor: "admin-1"}); !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}

		events, err := f.timeline.GetTimeline(ctx, p.ID)
		if err != nil || len(events) != 1 || events[0].Type != entities.ProposalEventCreated {
			t.Fatalf("expected only the CREATED event, got %+v %v", events, err)
		}
		got, _ := f.proposals.GetByID(ctx, p.ID)
		if got.Status != entities.ProposalStatusSubmitted {
			t.Fatalf("status changed to %s", got.Status)
		}
	})

	t.Run("unknown proposal", func(t *testing.T) {
		f := newFixture()
		_, err := f.timeline.AppendEvent(ctx, 77, entities.ProposalEventNoteAdded, entities.EventFields{Actor: "a"})
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("publishes EVENT_APPENDED", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := mock_interfaces.NewMockIRealtimePublisher(ctrl)
		f := newFixture(WithPublisher(pub))

		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")

		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev entities.RealtimeEvent) error {
			if ev.Name != entities.RealtimeProposalEventAppended || ev.Event == nil || ev.ProposalID != p.ID {
				t.Fatalf("unexpected realtime event: %+v", ev)
			}
			return nil
		})
		if _, err := f.timeline.AppendEvent(ctx, p.ID, entities.ProposalEventNoteAdded, entities.EventFields{Actor: "admin-1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTimelineUseCase_GetTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("only CREATED is not an error", func(t *testing.T) {
		f := newFixture()
		p, _ := f.proposals.CreateProposal(ctx, validProposalInput(), "dealer-1")
		events, err := f.timeline.GetTimeline(ctx, p.ID)
		if err != nil || len(events) != 1 {
			t.Fatalf("expected single CREATED event, got %v %v", events, err)
		}
	})

	t.Run("sorted by createdAt then seq", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		events := mock_interfaces.NewMockIProposalEventRepository(ctrl)
		uc := NewTimelineUseCase(proposals, events)

		proposals.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Proposal{ID: 3}, nil)
		events.EXPECT().ListByProposalID(gomock.Any(), int64(3)).Return([]entities.ProposalEvent{
			{ID: "c", Seq: 3, CreatedAt: baseNow.Add(time.Minute)},
			{ID: "b", Seq: 2, CreatedAt: baseNow},
			{ID: "a", Seq: 1, CreatedAt: baseNow},
		}, nil)

		got, err := uc.GetTimeline(ctx, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		events := mock_interfaces.NewMockIProposalEventRepository(ctrl)
		uc := NewTimelineUseCase(proposals, events)

		boom := errors.New("boom")
		proposals.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Proposal{}, boom)
		if _, err := uc.GetTimeline(ctx, 3); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}
