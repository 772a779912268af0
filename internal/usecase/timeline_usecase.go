package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrProposalNotFound  = fmt.Errorf("proposal %w", entities.ErrNotFound)
	ErrInvalidProposalID = fmt.Errorf("invalid proposal id: %w", entities.ErrValidation)
	ErrInvalidActor      = fmt.Errorf("invalid actor: %w", entities.ErrValidation)
	ErrInvalidEventType  = fmt.Errorf("invalid event type: %w", entities.ErrValidation)

	ErrEventTypeNotAppendable = fmt.Errorf("only NOTE_ADDED events can be appended directly: %w", entities.ErrValidation)
)

// ITimelineUseCase records and reads the proposal audit trail.
type ITimelineUseCase interface {
	AppendEvent(ctx context.Context, proposalID int64, typ entities.ProposalEventType, fields entities.EventFields) (entities.ProposalEvent, error)
	GetTimeline(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error)
}

type TimelineUseCase struct {
	proposals interfaces.IProposalRepository
	events    interfaces.IProposalEventRepository
	deps
}

var _ ITimelineUseCase = (*TimelineUseCase)(nil)

func NewTimelineUseCase(proposals interfaces.IProposalRepository, events interfaces.IProposalEventRepository, opts ...Option) *TimelineUseCase {
	return &TimelineUseCase{proposals: proposals, events: events, deps: newDeps(opts)}
}

// AppendEvent persists a standalone NOTE_ADDED event. Callers never supply id or createdAt.
func (u *TimelineUseCase) AppendEvent(ctx context.Context, proposalID int64, typ entities.ProposalEventType, fields entities.EventFields) (entities.ProposalEvent, error) {
	if proposalID <= 0 {
		return entities.ProposalEvent{}, ErrInvalidProposalID
	}
	if !typ.Valid() {
		return entities.ProposalEvent{}, ErrInvalidEventType
	}
	fields.Actor = strings.TrimSpace(fields.Actor)
	if fields.Actor == "" {
		return entities.ProposalEvent{}, ErrInvalidActor
	}
	// CREATED and STATUS_UPDATED come only from CreateProposal and UpdateStatus.
	if typ != entities.ProposalEventNoteAdded {
		return entities.ProposalEvent{}, ErrEventTypeNotAppendable
	}
	if fields.StatusFrom != nil || fields.StatusTo != nil {
		return entities.ProposalEvent{}, &entities.FieldError{Field: "status_from/status_to", Reason: "only set by status changes"}
	}

	p, err := u.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return entities.ProposalEvent{}, err
	}
	if p.ID == 0 {
		return entities.ProposalEvent{}, ErrProposalNotFound
	}

	ev, err := u.newEvent(ctx, proposalID, typ, fields)
	if err != nil {
		return entities.ProposalEvent{}, err
	}
	if err := u.events.Append(ctx, ev); err != nil {
		logger.LogError("timeline", "AppendEvent", "append", map[string]any{"proposal_id": proposalID, "seq": ev.Seq}, err)
		return entities.ProposalEvent{}, err
	}
	logger.Get().WithFields(logrus.Fields{
		"proposal_id": proposalID,
		"type":        typ,
		"actor":       fields.Actor,
	}).Info("[timeline][usecase] event appended")

	u.publish(ctx, entities.RealtimeEvent{Name: entities.RealtimeProposalEventAppended, ProposalID: proposalID, Event: &ev})
	return ev, nil
}

// GetTimeline returns every event of the proposal, oldest first.
func (u *TimelineUseCase) GetTimeline(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error) {
	if proposalID <= 0 {
		return nil, ErrInvalidProposalID
	}
	p, err := u.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, ErrProposalNotFound
	}

	events, err := u.events.ListByProposalID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []entities.ProposalEvent{}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Before(events[j]) })
	return events, nil
}

// newEvent stamps id, seq and createdAt. createdAt never goes below the last
// recorded event so timeline order survives clock skew between writers.
func (u *TimelineUseCase) newEvent(ctx context.Context, proposalID int64, typ entities.ProposalEventType, fields entities.EventFields) (entities.ProposalEvent, error) {
	last, err := u.events.Last(ctx, proposalID)
	if err != nil {
		return entities.ProposalEvent{}, err
	}

	createdAt := u.now()
	if last.ID != "" && createdAt.Before(last.CreatedAt) {
		createdAt = last.CreatedAt
	}

	return entities.ProposalEvent{
		ID:         newID(),
		ProposalID: proposalID,
		Seq:        last.Seq + 1,
		Type:       typ,
		StatusFrom: fields.StatusFrom,
		StatusTo:   fields.StatusTo,
		Actor:      fields.Actor,
		Note:       strings.TrimSpace(fields.Note),
		CreatedAt:  createdAt,
	}, nil
}
