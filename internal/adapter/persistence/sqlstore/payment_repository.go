package sqlstore

import (
	"context"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

var _ interfaces.IInstallmentPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p entities.InstallmentPayment) error {
	m := toInstallmentPaymentModel(p)
	return asConflict(r.db.WithContext(ctx).Create(&m).Error, "payment "+p.ID)
}

func (r *PaymentRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error) {
	var rows []installmentPaymentModel
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.InstallmentPayment, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
