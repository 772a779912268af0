package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// PaymentStatusFromProvider maps a Mercado Pago status onto ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusNegado
	default:
		return PaymentStatusPendente
	}
}

// InstallmentPayment is one attempt to settle an installment through the payment provider.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (contract_id-index): contract_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response (JSON) for traceability/audit.
//   - MPPayload is the parsed representation, useful for querying/debugging.
type InstallmentPayment struct {
	ID                string        `json:"id"`
	ContractID        string        `json:"contract_id"`
	InstallmentNumber int           `json:"installment_number"`
	Amount            float64       `json:"amount"`
	Date              time.Time     `json:"date"`
	Status            PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
