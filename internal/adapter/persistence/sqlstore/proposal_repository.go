package sqlstore

import (
	"context"
	"fmt"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProposalRepository struct {
	db *gorm.DB
}

var _ interfaces.IProposalRepository = (*ProposalRepository)(nil)

// NextID bumps the proposals counter inside a transaction.
func (r *ProposalRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := counterModel{Name: proposalsCounterName}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		res := tx.Model(&counterModel{}).
			Where("name = ?", proposalsCounterName).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		var c counterModel
		if err := tx.First(&c, "name = ?", proposalsCounterName).Error; err != nil {
			return err
		}
		id = c.Value
		return nil
	})
	return id, err
}

func (r *ProposalRepository) Create(ctx context.Context, p entities.Proposal, events []entities.ProposalEvent) error {
	what := fmt.Sprintf("proposal %d", p.ID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&proposalModel{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%s: %w", what, entities.ErrConflict)
		}
		m := toProposalModel(p)
		if err := tx.Create(&m).Error; err != nil {
			return asConflict(err, what)
		}
		return appendEvents(tx, events)
	})
}

func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (entities.Proposal, error) {
	var m proposalModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if notFound(err) {
		return entities.Proposal{}, nil
	}
	if err != nil {
		return entities.Proposal{}, err
	}
	return m.toEntity(), nil
}

func (r *ProposalRepository) List(ctx context.Context, filter interfaces.ProposalFilter) ([]entities.Proposal, error) {
	q := r.db.WithContext(ctx).Model(&proposalModel{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.DealerID != "" {
		q = q.Where("dealer_id = ?", filter.DealerID)
	}
	var rows []proposalModel
	if err := q.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Proposal, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Update writes p only if the stored version still equals expectedVersion.
func (r *ProposalRepository) Update(ctx context.Context, p entities.Proposal, expectedVersion int64, events []entities.ProposalEvent) error {
	what := fmt.Sprintf("proposal %d", p.ID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toProposalModel(p)
		res := tx.Model(&proposalModel{}).
			Where("id = ? AND version = ?", p.ID, expectedVersion).
			Select("*").Omit("id", "created_at").
			Updates(&m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s: %w", what, entities.ErrConflict)
		}
		return appendEvents(tx, events)
	})
}

func (r *ProposalRepository) ApplySnapshot(ctx context.Context, p entities.Proposal) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toProposalModel(p)
		res := tx.Model(&proposalModel{}).
			Where("id = ? AND updated_at_ns <= ?", p.ID, m.UpdatedAtNs).
			Select("*").Omit("id").
			Updates(&m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			applied = true
			return nil
		}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
		if ins.Error != nil {
			return ins.Error
		}
		applied = ins.RowsAffected > 0
		return nil
	})
	return applied, err
}

func (r *ProposalRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&proposalModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("proposal_id = ?", id).Delete(&proposalEventModel{}).Error
	})
	return deleted, err
}
