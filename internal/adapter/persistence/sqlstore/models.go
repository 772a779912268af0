package sqlstore

import (
	"encoding/json"
	"time"

	"grota_financiamento/internal/domain/entities"
)

type counterModel struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

func (counterModel) TableName() string { return "counters" }

type proposalModel struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Status string `gorm:"size:16;not null;index"`

	CustomerName  string `gorm:"not null"`
	CustomerCPF   string `gorm:"size:11;not null"`
	CustomerEmail string `gorm:"not null"`
	CustomerPhone string `gorm:"not null"`

	VehicleBrand string `gorm:"not null"`
	VehicleModel string `gorm:"not null"`
	VehicleYear  int    `gorm:"not null"`
	VehiclePlate string `gorm:"size:16;not null"`
	FipeCode     string `gorm:"size:16"`
	FipeValue    float64

	FinancedValue    float64 `gorm:"not null"`
	DownPaymentValue float64
	TermMonths       int `gorm:"not null"`

	DealerID *string `gorm:"size:64;index"`
	SellerID *string `gorm:"size:64"`
	Notes    string  `gorm:"type:text"`

	Version     int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	UpdatedAtNs int64     `gorm:"not null"`
}

func (proposalModel) TableName() string { return "proposals" }

type proposalEventModel struct {
	ProposalID int64     `gorm:"primaryKey;autoIncrement:false"`
	Seq        int64     `gorm:"primaryKey;autoIncrement:false"`
	ID         string    `gorm:"size:36;not null;uniqueIndex"`
	Type       string    `gorm:"size:32;not null"`
	StatusFrom *string   `gorm:"size:16"`
	StatusTo   *string   `gorm:"size:16"`
	Actor      string    `gorm:"not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (proposalEventModel) TableName() string { return "proposal_events" }

type contractModel struct {
	ID            string `gorm:"primaryKey;size:36"`
	ProposalID    int64  `gorm:"not null;uniqueIndex"`
	CustomerID    string `gorm:"size:36"`
	CustomerName  string
	CustomerCPF   string `gorm:"size:11"`
	CustomerEmail string
	CustomerPhone string

	StartDate          time.Time
	PaidAt             *time.Time
	FinancedValue      float64
	InstallmentValue   float64
	InstallmentsTotal  int
	OutstandingBalance float64
	RemainingBalance   float64
	Status             string `gorm:"size:16;index"`

	Installments []installmentModel `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`

	Version   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (contractModel) TableName() string { return "contracts" }

type installmentModel struct {
	ContractID string `gorm:"primaryKey;size:36"`
	Number     int    `gorm:"primaryKey;autoIncrement:false"`
	DueDate    time.Time
	Amount     float64
	Paid       bool
	PaidAt     *time.Time
}

func (installmentModel) TableName() string { return "contract_installments" }

type occurrenceModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	ContractID string    `gorm:"size:36;not null;index"`
	Date       time.Time `gorm:"not null"`
	Contact    string    `gorm:"not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (occurrenceModel) TableName() string { return "occurrences" }

type installmentPaymentModel struct {
	ID                string    `gorm:"primaryKey;size:64"`
	ContractID        string    `gorm:"size:36;not null;index"`
	InstallmentNumber int       `gorm:"not null"`
	Amount            float64   `gorm:"not null"`
	Date              time.Time `gorm:"not null"`
	Status            string    `gorm:"size:16;not null"`
	MPPayloadRaw      string    `gorm:"type:text"`
}

func (installmentPaymentModel) TableName() string { return "installment_payments" }

// Models lists every table owned by the store, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&counterModel{},
		&proposalModel{},
		&proposalEventModel{},
		&contractModel{},
		&installmentModel{},
		&occurrenceModel{},
		&installmentPaymentModel{},
	}
}

func toProposalModel(p entities.Proposal) proposalModel {
	return proposalModel{
		ID:               p.ID,
		Status:           string(p.Status),
		CustomerName:     p.CustomerName,
		CustomerCPF:      p.CustomerCPF,
		CustomerEmail:    p.CustomerEmail,
		CustomerPhone:    p.CustomerPhone,
		VehicleBrand:     p.VehicleBrand,
		VehicleModel:     p.VehicleModel,
		VehicleYear:      p.VehicleYear,
		VehiclePlate:     p.VehiclePlate,
		FipeCode:         p.FipeCode,
		FipeValue:        p.FipeValue,
		FinancedValue:    p.FinancedValue,
		DownPaymentValue: p.DownPaymentValue,
		TermMonths:       p.TermMonths,
		DealerID:         p.DealerID,
		SellerID:         p.SellerID,
		Notes:            p.Notes,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        p.UpdatedAt.UTC(),
		UpdatedAtNs:      p.UpdatedAt.UnixNano(),
	}
}

func (m proposalModel) toEntity() entities.Proposal {
	return entities.Proposal{
		ID:               m.ID,
		Status:           entities.ProposalStatus(m.Status),
		CustomerName:     m.CustomerName,
		CustomerCPF:      m.CustomerCPF,
		CustomerEmail:    m.CustomerEmail,
		CustomerPhone:    m.CustomerPhone,
		VehicleBrand:     m.VehicleBrand,
		VehicleModel:     m.VehicleModel,
		VehicleYear:      m.VehicleYear,
		VehiclePlate:     m.VehiclePlate,
		FipeCode:         m.FipeCode,
		FipeValue:        m.FipeValue,
		FinancedValue:    m.FinancedValue,
		DownPaymentValue: m.DownPaymentValue,
		TermMonths:       m.TermMonths,
		DealerID:         m.DealerID,
		SellerID:         m.SellerID,
		Notes:            m.Notes,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        time.Unix(0, m.UpdatedAtNs).UTC(),
	}
}

func toProposalEventModel(ev entities.ProposalEvent) proposalEventModel {
	m := proposalEventModel{
		ProposalID: ev.ProposalID,
		Seq:        ev.Seq,
		ID:         ev.ID,
		Type:       string(ev.Type),
		Actor:      ev.Actor,
		Note:       ev.Note,
		CreatedAt:  ev.CreatedAt.UTC(),
	}
	if ev.StatusFrom != nil {
		s := string(*ev.StatusFrom)
		m.StatusFrom = &s
	}
	if ev.StatusTo != nil {
		s := string(*ev.StatusTo)
		m.StatusTo = &s
	}
	return m
}

func (m proposalEventModel) toEntity() entities.ProposalEvent {
	ev := entities.ProposalEvent{
		ID:         m.ID,
		ProposalID: m.ProposalID,
		Seq:        m.Seq,
		Type:       entities.ProposalEventType(m.Type),
		Actor:      m.Actor,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.StatusFrom != nil {
		ev.StatusFrom = entities.StatusPtr(entities.ProposalStatus(*m.StatusFrom))
	}
	if m.StatusTo != nil {
		ev.StatusTo = entities.StatusPtr(entities.ProposalStatus(*m.StatusTo))
	}
	return ev
}

func toContractModel(c entities.BillingContract) contractModel {
	ins := make([]installmentModel, 0, len(c.Installments))
	for _, in := range c.Installments {
		ins = append(ins, installmentModel{
			ContractID: c.ID,
			Number:     in.Number,
			DueDate:    in.DueDate.UTC(),
			Amount:     in.Amount,
			Paid:       in.Paid,
			PaidAt:     utcPtr(in.PaidAt),
		})
	}
	return contractModel{
		ID:                 c.ID,
		ProposalID:         c.ProposalID,
		CustomerID:         c.CustomerID,
		CustomerName:       c.Customer.Name,
		CustomerCPF:        c.Customer.CPF,
		CustomerEmail:      c.Customer.Email,
		CustomerPhone:      c.Customer.Phone,
		StartDate:          c.StartDate.UTC(),
		PaidAt:             utcPtr(c.PaidAt),
		FinancedValue:      c.FinancedValue,
		InstallmentValue:   c.InstallmentValue,
		InstallmentsTotal:  c.InstallmentsTotal,
		OutstandingBalance: c.OutstandingBalance,
		RemainingBalance:   c.RemainingBalance,
		Status:             string(c.Status),
		Installments:       ins,
		Version:            c.Version,
		CreatedAt:          c.CreatedAt.UTC(),
		UpdatedAt:          c.UpdatedAt.UTC(),
	}
}

func (m contractModel) toEntity() entities.BillingContract {
	ins := make([]entities.Installment, 0, len(m.Installments))
	for _, in := range m.Installments {
		ins = append(ins, entities.Installment{
			Number:  in.Number,
			DueDate: in.DueDate.UTC(),
			Amount:  in.Amount,
			Paid:    in.Paid,
			PaidAt:  utcPtr(in.PaidAt),
		})
	}
	return entities.BillingContract{
		ID:         m.ID,
		ProposalID: m.ProposalID,
		CustomerID: m.CustomerID,
		Customer: entities.Customer{
			ID:    m.CustomerID,
			Name:  m.CustomerName,
			CPF:   m.CustomerCPF,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		StartDate:          m.StartDate.UTC(),
		PaidAt:             utcPtr(m.PaidAt),
		FinancedValue:      m.FinancedValue,
		InstallmentValue:   m.InstallmentValue,
		InstallmentsTotal:  m.InstallmentsTotal,
		OutstandingBalance: m.OutstandingBalance,
		RemainingBalance:   m.RemainingBalance,
		Status:             entities.BillingStatus(m.Status),
		Installments:       ins,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func toInstallmentPaymentModel(p entities.InstallmentPayment) installmentPaymentModel {
	return installmentPaymentModel{
		ID:                p.ID,
		ContractID:        p.ContractID,
		InstallmentNumber: p.InstallmentNumber,
		Amount:            p.Amount,
		Date:              p.Date.UTC(),
		Status:            string(p.Status),
		MPPayloadRaw:      string(p.MPPayloadRaw),
	}
}

func (m installmentPaymentModel) toEntity() entities.InstallmentPayment {
	p := entities.InstallmentPayment{
		ID:                m.ID,
		ContractID:        m.ContractID,
		InstallmentNumber: m.InstallmentNumber,
		Amount:            m.Amount,
		Date:              m.Date.UTC(),
		Status:            entities.PaymentStatus(m.Status),
	}
	if m.MPPayloadRaw != "" {
		p.MPPayloadRaw = json.RawMessage(m.MPPayloadRaw)
		var payload map[string]interface{}
		if err := json.Unmarshal(p.MPPayloadRaw, &payload); err == nil {
			p.MPPayload = payload
		}
	}
	return p
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
