package response

import (
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase"
)

type InstallmentPaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	ID                string    `json:"id"`
	ContractID        string    `json:"contract_id"`
	InstallmentNumber int       `json:"installment_number"`
	Amount            float64   `json:"amount"`
	PaymentDate       time.Time `json:"payment_date"`
	Date              time.Time `json:"date"`
	Status            string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromInstallmentPayment(p entities.InstallmentPayment) InstallmentPaymentResponse {
	return InstallmentPaymentResponse{
		PaymentID:         p.ID,
		ID:                p.ID,
		ContractID:        p.ContractID,
		InstallmentNumber: p.InstallmentNumber,
		Amount:            p.Amount,
		PaymentDate:       p.Date,
		Date:              p.Date,
		Status:            string(p.Status),
		MPPayloadRaw:      string(p.MPPayloadRaw),
		MPPayload:         p.MPPayload,
	}
}

func FromInstallmentPayments(list []entities.InstallmentPayment) []InstallmentPaymentResponse {
	out := make([]InstallmentPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromInstallmentPayment(p))
	}
	return out
}

// PayInstallmentResponse carries the payment and the contract as it stands afterwards.
type PayInstallmentResponse struct {
	Payment  InstallmentPaymentResponse `json:"payment"`
	Contract ContractResponse           `json:"contract"`
}

func FromInstallmentPaymentResult(r usecase.InstallmentPaymentResult) PayInstallmentResponse {
	return PayInstallmentResponse{
		Payment:  FromInstallmentPayment(r.Payment),
		Contract: FromContract(r.Contract),
	}
}
