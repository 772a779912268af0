package sqlstore

import (
	"context"
	"fmt"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// EventRepository is the append-only proposal timeline. The (proposal_id, seq)
// primary key rejects a second writer that read the same last event.
type EventRepository struct {
	db *gorm.DB
}

var _ interfaces.IProposalEventRepository = (*EventRepository)(nil)

func (r *EventRepository) Append(ctx context.Context, ev entities.ProposalEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendEvents(tx, []entities.ProposalEvent{ev})
	})
}

func (r *EventRepository) ListByProposalID(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error) {
	var rows []proposalEventModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.ProposalEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *EventRepository) Last(ctx context.Context, proposalID int64) (entities.ProposalEvent, error) {
	var m proposalEventModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("seq DESC").
		Take(&m).Error
	if notFound(err) {
		return entities.ProposalEvent{}, nil
	}
	if err != nil {
		return entities.ProposalEvent{}, err
	}
	return m.toEntity(), nil
}

func appendEvents(tx *gorm.DB, events []entities.ProposalEvent) error {
	for _, ev := range events {
		what := fmt.Sprintf("proposal %d event %d", ev.ProposalID, ev.Seq)
		var n int64
		if err := tx.Model(&proposalEventModel{}).
			Where("proposal_id = ? AND seq = ?", ev.ProposalID, ev.Seq).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%s: %w", what, entities.ErrConflict)
		}
		m := toProposalEventModel(ev)
		if err := tx.Create(&m).Error; err != nil {
			return asConflict(err, what)
		}
	}
	return nil
}
