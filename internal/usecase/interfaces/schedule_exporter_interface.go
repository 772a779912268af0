package interfaces

import "grota_financiamento/internal/domain/entities"

// IScheduleExporter renders a contract's installment schedule as a spreadsheet.
type IScheduleExporter interface {
	ExportSchedule(c entities.BillingContract) ([]byte, error)
}
