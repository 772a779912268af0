// Package sqlstore implements the repository ports on top of gorm, for the
// postgres, mysql and sqlite storage drivers.
package sqlstore

import (
	"errors"
	"fmt"

	"grota_financiamento/internal/domain/entities"

	"gorm.io/gorm"
)

const proposalsCounterName = "proposals"

// Migrate creates or updates every table owned by the store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("sqlstore migrate: %w", err)
	}
	return nil
}

// Store groups the repositories sharing one database handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Proposals() *ProposalRepository {
	return &ProposalRepository{db: s.db}
}

func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

func (s *Store) Contracts() *ContractRepository {
	return &ContractRepository{db: s.db}
}

func (s *Store) Occurrences() *OccurrenceRepository {
	return &OccurrenceRepository{db: s.db}
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{db: s.db}
}

func asConflict(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", what, entities.ErrConflict)
	}
	return err
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
