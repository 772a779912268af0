package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg/document"

	"github.com/sirupsen/logrus"
)

const systemActor = "system"

var ErrInvalidProposalStatus = fmt.Errorf("invalid status: %w", entities.ErrValidation)

// CreateProposalInput is the dealer's submission.
type CreateProposalInput struct {
	CustomerName  string
	CustomerCPF   string
	CustomerEmail string
	CustomerPhone string

	VehicleBrand string
	VehicleModel string
	VehicleYear  int
	VehiclePlate string
	FipeCode     string
	FipeValue    float64

	FinancedValue    float64
	DownPaymentValue float64
	TermMonths       int

	DealerID *string
	SellerID *string
	Notes    string
}

// IProposalUseCase exposes the proposal lifecycle.
//
//   - POST /proposals                 => CreateProposal()
//   - PATCH /proposals/{id}/status    => UpdateStatus()
//   - PATCH /proposals/{id}/notes     => UpdateNote()
//   - DELETE /proposals/{id}          => DeleteProposal()
//   - PUT /proposals/{id}/snapshot    => ApplyRemoteSnapshot()
type IProposalUseCase interface {
	CreateProposal(ctx context.Context, in CreateProposalInput, actor string) (entities.Proposal, error)
	GetByID(ctx context.Context, id int64) (entities.Proposal, error)
	List(ctx context.Context, filter interfaces.ProposalFilter) ([]entities.Proposal, error)
	UpdateStatus(ctx context.Context, id int64, next entities.ProposalStatus, actor string, note *string) (entities.Proposal, error)
	UpdateNote(ctx context.Context, id int64, note string, actor string) (entities.Proposal, error)
	AssignDealer(ctx context.Context, id int64, dealerID, sellerID *string, actor string) (entities.Proposal, error)
	DeleteProposal(ctx context.Context, id int64) error
	ApplyRemoteSnapshot(ctx context.Context, p entities.Proposal, source string) (bool, error)
}

type ProposalUseCase struct {
	repo     interfaces.IProposalRepository
	timeline *TimelineUseCase
	deps
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository, events interfaces.IProposalEventRepository, opts ...Option) *ProposalUseCase {
	d := newDeps(opts)
	return &ProposalUseCase{
		repo:     repo,
		timeline: &TimelineUseCase{proposals: repo, events: events, deps: d},
		deps:     d,
	}
}

func (u *ProposalUseCase) CreateProposal(ctx context.Context, in CreateProposalInput, actor string) (entities.Proposal, error) {
	in = trimProposalInput(in)
	if err := validateProposalInput(in); err != nil {
		return entities.Proposal{}, err
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = systemActor
	}

	if in.FipeCode != "" && in.FipeValue == 0 {
		in.FipeValue = u.resolveFipeValue(ctx, in.FipeCode)
	}

	id, err := u.repo.NextID(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}

	now := u.now()
	p := entities.Proposal{
		ID:               id,
		Status:           entities.ProposalStatusSubmitted,
		CustomerName:     in.CustomerName,
		CustomerCPF:      document.NormalizeCPF(in.CustomerCPF),
		CustomerEmail:    in.CustomerEmail,
		CustomerPhone:    in.CustomerPhone,
		VehicleBrand:     in.VehicleBrand,
		VehicleModel:     in.VehicleModel,
		VehicleYear:      in.VehicleYear,
		VehiclePlate:     strings.ToUpper(in.VehiclePlate),
		FipeCode:         in.FipeCode,
		FipeValue:        in.FipeValue,
		FinancedValue:    in.FinancedValue,
		DownPaymentValue: in.DownPaymentValue,
		TermMonths:       in.TermMonths,
		DealerID:         nonEmpty(in.DealerID),
		SellerID:         nonEmpty(in.SellerID),
		Notes:            in.Notes,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	ev := entities.ProposalEvent{
		ID:         newID(),
		ProposalID: id,
		Seq:        1,
		Type:       entities.ProposalEventCreated,
		StatusTo:   entities.StatusPtr(entities.ProposalStatusSubmitted),
		Actor:      actor,
		CreatedAt:  now,
	}

	if err := u.repo.Create(ctx, p, []entities.ProposalEvent{ev}); err != nil {
		logger.LogError("proposal", "CreateProposal", "create", map[string]any{"proposal_id": id}, err)
		return entities.Proposal{}, err
	}
	logger.Get().WithFields(logrus.Fields{"proposal_id": id, "actor": actor}).Info("[proposal][usecase] created")

	u.publish(ctx, entities.RealtimeEvent{Name: entities.RealtimeProposalCreated, ProposalID: id, Proposal: &p})
	return p, nil
}

// resolveFipeValue never fails the submission: a lookup error leaves the value for manual entry.
func (u *ProposalUseCase) resolveFipeValue(ctx context.Context, code string) float64 {
	if u.vehicles == nil {
		return 0
	}
	quote, err := u.vehicles.LookupFipe(ctx, code)
	if err != nil {
		logger.Get().WithField("fipe_code", code).WithError(err).Warn("[proposal][usecase] fipe lookup failed; keeping manual value")
		return 0
	}
	return quote.Value
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id int64) (entities.Proposal, error) {
	if id <= 0 {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == 0 {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) List(ctx context.Context, filter interfaces.ProposalFilter) ([]entities.Proposal, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidProposalStatus
	}
	return u.repo.List(ctx, filter)
}

// UpdateStatus applies one transition of the credit-analysis table. Moving to
// the current status is a no-op: no event, no updatedAt change.
func (u *ProposalUseCase) UpdateStatus(ctx context.Context, id int64, next entities.ProposalStatus, actor string, note *string) (entities.Proposal, error) {
	if id <= 0 {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if !next.Valid() {
		return entities.Proposal{}, ErrInvalidProposalStatus
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entities.Proposal{}, ErrInvalidActor
	}

	return u.mutate(ctx, id, func(p *entities.Proposal) (*entities.ProposalEvent, error) {
		from := p.Status
		if from == next {
			return nil, nil
		}
		if !entities.CanTransition(from, next) {
			return nil, &entities.TransitionError{ProposalID: id, From: from, To: next}
		}

		fields := entities.EventFields{
			StatusFrom: entities.StatusPtr(from),
			StatusTo:   entities.StatusPtr(next),
			Actor:      actor,
		}
		if note != nil {
			p.Notes = strings.TrimSpace(*note)
			fields.Note = p.Notes
		}
		p.Status = next
		ev, err := u.timeline.newEvent(ctx, id, entities.ProposalEventStatusUpdated, fields)
		if err != nil {
			return nil, err
		}
		return &ev, nil
	}, entities.RealtimeProposalStatusUpdated)
}

// UpdateNote replaces the dealer-visible message. Allowed in any status.
func (u *ProposalUseCase) UpdateNote(ctx context.Context, id int64, note string, actor string) (entities.Proposal, error) {
	if id <= 0 {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entities.Proposal{}, ErrInvalidActor
	}
	note = strings.TrimSpace(note)

	return u.mutate(ctx, id, func(p *entities.Proposal) (*entities.ProposalEvent, error) {
		if p.Notes == note {
			return nil, nil
		}
		p.Notes = note
		ev, err := u.timeline.newEvent(ctx, id, entities.ProposalEventNoteAdded, entities.EventFields{Actor: actor, Note: note})
		if err != nil {
			return nil, err
		}
		return &ev, nil
	}, entities.RealtimeProposalEventAppended)
}

// AssignDealer sets the dealer/seller references. A nil pointer keeps the
// current value; an empty string clears it.
func (u *ProposalUseCase) AssignDealer(ctx context.Context, id int64, dealerID, sellerID *string, actor string) (entities.Proposal, error) {
	if id <= 0 {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entities.Proposal{}, ErrInvalidActor
	}

	return u.mutate(ctx, id, func(p *entities.Proposal) (*entities.ProposalEvent, error) {
		var changes []string
		if dealerID != nil && deref(p.DealerID) != strings.TrimSpace(*dealerID) {
			p.DealerID = nonEmpty(dealerID)
			changes = append(changes, "lojista: "+describeRef(p.DealerID))
		}
		if sellerID != nil && deref(p.SellerID) != strings.TrimSpace(*sellerID) {
			p.SellerID = nonEmpty(sellerID)
			changes = append(changes, "vendedor: "+describeRef(p.SellerID))
		}
		if len(changes) == 0 {
			return nil, nil
		}
		ev, err := u.timeline.newEvent(ctx, id, entities.ProposalEventNoteAdded, entities.EventFields{Actor: actor, Note: strings.Join(changes, "; ")})
		if err != nil {
			return nil, err
		}
		return &ev, nil
	}, entities.RealtimeProposalEventAppended)
}

// mutate runs one locked read-modify-write cycle. change returns the event to
// record, or nil for a no-op that leaves the stored record untouched.
func (u *ProposalUseCase) mutate(
	ctx context.Context,
	id int64,
	change func(p *entities.Proposal) (*entities.ProposalEvent, error),
	notify entities.RealtimeEventName,
) (entities.Proposal, error) {
	release, err := u.lock(ctx, "proposal", id)
	if err != nil {
		return entities.Proposal{}, err
	}
	defer release()

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == 0 {
		return entities.Proposal{}, ErrProposalNotFound
	}

	expected := p.Version
	ev, err := change(&p)
	if err != nil {
		return entities.Proposal{}, err
	}
	if ev == nil {
		return p, nil
	}

	p.Touch(u.now())
	if p.UpdatedAt.Before(ev.CreatedAt) {
		p.UpdatedAt = ev.CreatedAt
	}
	if err := u.repo.Update(ctx, p, expected, []entities.ProposalEvent{*ev}); err != nil {
		if errors.Is(err, entities.ErrConflict) {
			logger.Get().WithFields(logrus.Fields{"proposal_id": id, "expected_version": expected}).Warn("[proposal][usecase] concurrent update rejected")
		} else {
			logger.LogError("proposal", "mutate", "update", map[string]any{"proposal_id": id}, err)
		}
		return entities.Proposal{}, err
	}
	logger.Get().WithFields(logrus.Fields{
		"proposal_id": id,
		"event":       ev.Type,
		"actor":       ev.Actor,
		"status":      p.Status,
	}).Info("[proposal][usecase] updated")

	u.publish(ctx, entities.RealtimeEvent{Name: notify, ProposalID: id, Proposal: &p, Event: ev})
	return p, nil
}

// DeleteProposal hard-deletes the proposal and its timeline.
func (u *ProposalUseCase) DeleteProposal(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidProposalID
	}
	release, err := u.lock(ctx, "proposal", id)
	if err != nil {
		return err
	}
	defer release()

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProposalNotFound
	}
	logger.Get().WithField("proposal_id", id).Info("[proposal][usecase] deleted")

	u.publish(ctx, entities.RealtimeEvent{Name: entities.RealtimeProposalsRefreshRequest, ProposalID: id})
	return nil
}

// ApplyRemoteSnapshot stores a proposal received from the realtime bridge unless
// it is our own echo or older than what we have. Reports whether it was applied.
func (u *ProposalUseCase) ApplyRemoteSnapshot(ctx context.Context, p entities.Proposal, source string) (bool, error) {
	if strings.TrimSpace(source) == u.source {
		return false, nil
	}
	if p.ID <= 0 {
		return false, ErrInvalidProposalID
	}
	if !p.Status.Valid() {
		return false, ErrInvalidProposalStatus
	}
	if p.UpdatedAt.IsZero() {
		return false, &entities.FieldError{Field: "updated_at", Reason: "required", Err: entities.ErrInvalidDate}
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.CreatedAt = p.CreatedAt.UTC()

	release, err := u.lock(ctx, "proposal", p.ID)
	if err != nil {
		return false, err
	}
	defer release()

	applied, err := u.repo.ApplySnapshot(ctx, p)
	if err != nil {
		return false, err
	}
	logger.Get().WithFields(logrus.Fields{
		"proposal_id": p.ID,
		"source":      source,
		"applied":     applied,
	}).Info("[proposal][usecase] remote snapshot")
	return applied, nil
}

func trimProposalInput(in CreateProposalInput) CreateProposalInput {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerCPF = strings.TrimSpace(in.CustomerCPF)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.VehicleBrand = strings.TrimSpace(in.VehicleBrand)
	in.VehicleModel = strings.TrimSpace(in.VehicleModel)
	in.VehiclePlate = strings.TrimSpace(in.VehiclePlate)
	in.FipeCode = strings.TrimSpace(in.FipeCode)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

func validateProposalInput(in CreateProposalInput) error {
	required := []struct{ field, value string }{
		{"customer_name", in.CustomerName},
		{"customer_cpf", in.CustomerCPF},
		{"customer_email", in.CustomerEmail},
		{"customer_phone", in.CustomerPhone},
		{"vehicle_brand", in.VehicleBrand},
		{"vehicle_model", in.VehicleModel},
		{"vehicle_plate", in.VehiclePlate},
	}
	for _, r := range required {
		if r.value == "" {
			return &entities.FieldError{Field: r.field, Reason: "required"}
		}
	}
	if !document.ValidCPF(in.CustomerCPF) {
		return &entities.FieldError{Field: "customer_cpf", Reason: "invalid cpf"}
	}
	if in.VehicleYear <= 0 {
		return &entities.FieldError{Field: "vehicle_year", Reason: "must be positive"}
	}
	if in.FinancedValue <= 0 {
		return &entities.FieldError{Field: "financed_value", Reason: "must be greater than zero", Err: entities.ErrInvalidAmount}
	}
	if in.DownPaymentValue < 0 {
		return &entities.FieldError{Field: "down_payment_value", Reason: "must not be negative", Err: entities.ErrInvalidAmount}
	}
	if in.FipeValue < 0 {
		return &entities.FieldError{Field: "fipe_value", Reason: "must not be negative", Err: entities.ErrInvalidAmount}
	}
	if in.TermMonths <= 0 {
		return &entities.FieldError{Field: "term_months", Reason: "must be positive"}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func describeRef(s *string) string {
	if s == nil {
		return "removido"
	}
	return *s
}
