package sqlstore

import (
	"context"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type OccurrenceRepository struct {
	db *gorm.DB
}

var _ interfaces.IOccurrenceRepository = (*OccurrenceRepository)(nil)

func (r *OccurrenceRepository) Create(ctx context.Context, o entities.Occurrence) error {
	m := occurrenceModel{
		ID:         o.ID,
		ContractID: o.ContractID,
		Date:       o.Date.UTC(),
		Contact:    o.Contact,
		Note:       o.Note,
		CreatedAt:  o.CreatedAt.UTC(),
	}
	return asConflict(r.db.WithContext(ctx).Create(&m).Error, "occurrence "+o.ID)
}

func (r *OccurrenceRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.Occurrence, error) {
	var rows []occurrenceModel
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Occurrence, 0, len(rows))
	for _, m := range rows {
		out = append(out, entities.Occurrence{
			ID:         m.ID,
			ContractID: m.ContractID,
			Date:       m.Date.UTC(),
			Contact:    m.Contact,
			Note:       m.Note,
			CreatedAt:  m.CreatedAt.UTC(),
		})
	}
	return out, nil
}
