package export

import (
	"fmt"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg/calendar"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Parcelas"
	numFmtMoney = 4 // #,##0.00
)

var scheduleHeaders = []string{"Parcela", "Vencimento", "Valor", "Paga", "Pago em", "Dias de atraso"}

// ScheduleXLSX renders a contract's installment schedule for the collections team.
type ScheduleXLSX struct{}

var _ interfaces.IScheduleExporter = ScheduleXLSX{}

func NewScheduleXLSX() ScheduleXLSX {
	return ScheduleXLSX{}
}

func (ScheduleXLSX) ExportSchedule(c entities.BillingContract) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, h := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}

	row := 2
	for _, in := range c.Installments {
		paid := "Não"
		paidAt := ""
		if in.Paid {
			paid = "Sim"
		}
		if in.PaidAt != nil {
			paidAt = calendar.FormatDate(*in.PaidAt)
		}
		values := []any{in.Number, calendar.FormatDate(in.DueDate), in.Amount, paid, paidAt, in.DaysLate}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), money); err != nil {
			return nil, err
		}
		row++
	}

	row++
	totals := [][]any{
		{"Contrato", c.ID},
		{"Status", string(c.Status)},
		{"Saldo devedor", c.OutstandingBalance},
		{"Saldo restante", c.RemainingBalance},
	}
	for _, t := range totals {
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("B%d", row), &t); err != nil {
			return nil, err
		}
		if _, isAmount := t[1].(float64); isAmount {
			if err := f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), money); err != nil {
				return nil, err
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
