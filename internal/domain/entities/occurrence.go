package entities

import "time"

// Occurrence is a collections contact-log entry attached to a contract.
// Append-only; listed newest first.
//
// Storage model (DynamoDB):
//   - PK: contract_id, SK: id
type Occurrence struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	Date       time.Time `json:"date"`
	Contact    string    `json:"contact"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
