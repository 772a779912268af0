package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// IInstallmentPaymentRepository persists provider payment attempts.
type IInstallmentPaymentRepository interface {
	Create(ctx context.Context, p entities.InstallmentPayment) error
	ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error)
}
