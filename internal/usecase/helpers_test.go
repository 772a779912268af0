package usecase

import (
	"sync"
	"time"

	"grota_financiamento/internal/adapter/persistence/memory"
)

// stepClock is a settable clock for tests that need time to move.
type stepClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = t
}

// 2024-03-01 09:00 in São Paulo.
var baseNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func validProposalInput() CreateProposalInput {
	return CreateProposalInput{
		CustomerName:  " Maria Silva ",
		CustomerCPF:   "529.982.247-25",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "11999990000",
		VehicleBrand:  "Fiat",
		VehicleModel:  "Argo",
		VehicleYear:   2022,
		VehiclePlate:  "abc1d23",
		FipeCode:      "001234-5",
		FipeValue:     70000,

		FinancedValue:    50000,
		DownPaymentValue: 20000,
		TermMonths:       48,
	}
}

type fixture struct {
	store     *memory.Store
	clock     *stepClock
	proposals *ProposalUseCase
	timeline  *TimelineUseCase
	contracts *ContractUseCase
}

func newFixture(opts ...Option) *fixture {
	store := memory.NewStore()
	clock := &stepClock{at: baseNow}
	opts = append([]Option{WithClock(clock)}, opts...)
	return &fixture{
		store:     store,
		clock:     clock,
		proposals: NewProposalUseCase(store, store.Events(), opts...),
		timeline:  NewTimelineUseCase(store, store.Events(), opts...),
		contracts: NewContractUseCase(store.Contracts(), store.Occurrences(), store, opts...),
	}
}
