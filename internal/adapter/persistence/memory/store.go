// Package memory keeps every aggregate in process memory. It backs
// STORAGE_DRIVER=memory and the use-case tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"
)

// Store holds proposals, events, contracts, occurrences and payments behind one mutex,
// so a proposal write and its events commit together.
type Store struct {
	mu          sync.RWMutex
	lastID      int64
	proposals   map[int64]entities.Proposal
	events      map[int64][]entities.ProposalEvent
	contracts   map[string]entities.BillingContract
	occurrences map[string][]entities.Occurrence
	payments    map[string][]entities.InstallmentPayment
}

var (
	_ interfaces.IProposalRepository           = (*Store)(nil)
	_ interfaces.IProposalEventRepository      = (*EventRepository)(nil)
	_ interfaces.IContractRepository           = (*ContractRepository)(nil)
	_ interfaces.IOccurrenceRepository         = (*OccurrenceRepository)(nil)
	_ interfaces.IInstallmentPaymentRepository = (*PaymentRepository)(nil)
)

func NewStore() *Store {
	return &Store{
		proposals:   map[int64]entities.Proposal{},
		events:      map[int64][]entities.ProposalEvent{},
		contracts:   map[string]entities.BillingContract{},
		occurrences: map[string][]entities.Occurrence{},
		payments:    map[string][]entities.InstallmentPayment{},
	}
}

func (s *Store) NextID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID, nil
}

func (s *Store) Create(ctx context.Context, p entities.Proposal, events []entities.ProposalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proposals[p.ID]; ok {
		return fmt.Errorf("proposal %d: %w", p.ID, entities.ErrConflict)
	}
	if err := s.checkEvents(p.ID, events); err != nil {
		return err
	}
	if p.ID > s.lastID {
		s.lastID = p.ID
	}
	s.proposals[p.ID] = cloneProposal(p)
	s.events[p.ID] = append(s.events[p.ID], events...)
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	return cloneProposal(p), nil
}

func (s *Store) List(ctx context.Context, filter interfaces.ProposalFilter) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.DealerID != "" && (p.DealerID == nil || *p.DealerID != filter.DealerID) {
			continue
		}
		out = append(out, cloneProposal(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) Update(ctx context.Context, p entities.Proposal, expectedVersion int64, events []entities.ProposalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.proposals[p.ID]
	if !ok || cur.Version != expectedVersion {
		return fmt.Errorf("proposal %d version %d: %w", p.ID, expectedVersion, entities.ErrConflict)
	}
	if err := s.checkEvents(p.ID, events); err != nil {
		return err
	}
	s.proposals[p.ID] = cloneProposal(p)
	s.events[p.ID] = append(s.events[p.ID], events...)
	return nil
}

func (s *Store) ApplySnapshot(ctx context.Context, p entities.Proposal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.proposals[p.ID]; ok && !p.NewerOrEqual(cur) {
		return false, nil
	}
	if p.ID > s.lastID {
		s.lastID = p.ID
	}
	s.proposals[p.ID] = cloneProposal(p)
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proposals[id]; !ok {
		return false, nil
	}
	delete(s.proposals, id)
	delete(s.events, id)
	return true, nil
}

// checkEvents must be called with mu held.
func (s *Store) checkEvents(proposalID int64, events []entities.ProposalEvent) error {
	for _, ev := range events {
		for _, cur := range s.events[proposalID] {
			if cur.Seq == ev.Seq {
				return fmt.Errorf("event seq %d of proposal %d: %w", ev.Seq, proposalID, entities.ErrConflict)
			}
		}
	}
	return nil
}

// Events returns the event repository view over the same store.
func (s *Store) Events() *EventRepository { return &EventRepository{s} }

func (s *Store) Contracts() *ContractRepository { return &ContractRepository{s} }

func (s *Store) Occurrences() *OccurrenceRepository { return &OccurrenceRepository{s} }

func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s} }

type EventRepository struct{ s *Store }

func (r *EventRepository) Append(ctx context.Context, ev entities.ProposalEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkEvents(ev.ProposalID, []entities.ProposalEvent{ev}); err != nil {
		return err
	}
	r.s.events[ev.ProposalID] = append(r.s.events[ev.ProposalID], ev)
	return nil
}

func (r *EventRepository) ListByProposalID(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.ProposalEvent, len(r.s.events[proposalID]))
	copy(out, r.s.events[proposalID])
	return out, nil
}

func (r *EventRepository) Last(ctx context.Context, proposalID int64) (entities.ProposalEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var last entities.ProposalEvent
	for _, ev := range r.s.events[proposalID] {
		if last.ID == "" || ev.Seq > last.Seq {
			last = ev
		}
	}
	return last, nil
}

type ContractRepository struct{ s *Store }

func (r *ContractRepository) Create(ctx context.Context, c entities.BillingContract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[c.ID]; ok {
		return fmt.Errorf("contract %s: %w", c.ID, entities.ErrConflict)
	}
	for _, cur := range r.s.contracts {
		if cur.ProposalID == c.ProposalID {
			return fmt.Errorf("contract for proposal %d: %w", c.ProposalID, entities.ErrConflict)
		}
	}
	r.s.contracts[c.ID] = cloneContract(c)
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (entities.BillingContract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return entities.BillingContract{}, nil
	}
	return cloneContract(c), nil
}

func (r *ContractRepository) GetByProposalID(ctx context.Context, proposalID int64) (entities.BillingContract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.contracts {
		if c.ProposalID == proposalID {
			return cloneContract(c), nil
		}
	}
	return entities.BillingContract{}, nil
}

func (r *ContractRepository) List(ctx context.Context) ([]entities.BillingContract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.BillingContract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		out = append(out, cloneContract(c))
	}
	return out, nil
}

func (r *ContractRepository) Update(ctx context.Context, c entities.BillingContract, expectedVersion int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.contracts[c.ID]
	if !ok || cur.Version != expectedVersion {
		return fmt.Errorf("contract %s version %d: %w", c.ID, expectedVersion, entities.ErrConflict)
	}
	r.s.contracts[c.ID] = cloneContract(c)
	return nil
}

type OccurrenceRepository struct{ s *Store }

func (r *OccurrenceRepository) Create(ctx context.Context, o entities.Occurrence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.occurrences[o.ContractID] = append(r.s.occurrences[o.ContractID], o)
	return nil
}

func (r *OccurrenceRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.Occurrence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.occurrences[contractID]
	out := make([]entities.Occurrence, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	return out, nil
}

type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(ctx context.Context, p entities.InstallmentPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.payments[p.ContractID] {
		if cur.ID == p.ID {
			return fmt.Errorf("payment %s: %w", p.ID, entities.ErrConflict)
		}
	}
	r.s.payments[p.ContractID] = append(r.s.payments[p.ContractID], p)
	return nil
}

func (r *PaymentRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.InstallmentPayment, len(r.s.payments[contractID]))
	copy(out, r.s.payments[contractID])
	return out, nil
}

func cloneProposal(p entities.Proposal) entities.Proposal {
	if p.DealerID != nil {
		v := *p.DealerID
		p.DealerID = &v
	}
	if p.SellerID != nil {
		v := *p.SellerID
		p.SellerID = &v
	}
	return p
}

func cloneContract(c entities.BillingContract) entities.BillingContract {
	ins := make([]entities.Installment, len(c.Installments))
	copy(ins, c.Installments)
	for i := range ins {
		if ins[i].PaidAt != nil {
			v := *ins[i].PaidAt
			ins[i].PaidAt = &v
		}
	}
	c.Installments = ins
	if c.PaidAt != nil {
		v := *c.PaidAt
		c.PaidAt = &v
	}
	return c
}
