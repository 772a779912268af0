package sqlstore

import (
	"context"
	"fmt"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

var _ interfaces.IContractRepository = (*ContractRepository)(nil)

func byNumber(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC")
}

func (r *ContractRepository) Create(ctx context.Context, c entities.BillingContract) error {
	what := "contract " + c.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&contractModel{}).
			Where("id = ? OR proposal_id = ?", c.ID, c.ProposalID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%s: %w", what, entities.ErrConflict)
		}
		m := toContractModel(c)
		return asConflict(tx.Create(&m).Error, what)
	})
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (entities.BillingContract, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ContractRepository) GetByProposalID(ctx context.Context, proposalID int64) (entities.BillingContract, error) {
	return r.first(ctx, "proposal_id = ?", proposalID)
}

func (r *ContractRepository) first(ctx context.Context, query string, arg any) (entities.BillingContract, error) {
	var m contractModel
	err := r.db.WithContext(ctx).Preload("Installments", byNumber).First(&m, query, arg).Error
	if notFound(err) {
		return entities.BillingContract{}, nil
	}
	if err != nil {
		return entities.BillingContract{}, err
	}
	return m.toEntity(), nil
}

func (r *ContractRepository) List(ctx context.Context) ([]entities.BillingContract, error) {
	var rows []contractModel
	if err := r.db.WithContext(ctx).Preload("Installments", byNumber).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.BillingContract, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Update rewrites the contract row and its schedule when the stored version matches.
func (r *ContractRepository) Update(ctx context.Context, c entities.BillingContract, expectedVersion int64) error {
	what := "contract " + c.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toContractModel(c)
		installments := m.Installments
		m.Installments = nil

		res := tx.Model(&contractModel{}).
			Where("id = ? AND version = ?", c.ID, expectedVersion).
			Select("*").Omit("id", "created_at", "Installments").
			Updates(&m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s: %w", what, entities.ErrConflict)
		}
		for i := range installments {
			if err := tx.Save(&installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
