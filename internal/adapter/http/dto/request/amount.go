package request

import (
	"bytes"
	"encoding/json"

	"grota_financiamento/pkg/money"
)

// Amount accepts either a JSON number or BRL-formatted text ("R$ 68.500,00").
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] != '"' {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return money.ErrInvalidAmount
		}
		*a = Amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return money.ErrInvalidAmount
	}
	v, err := money.ParseMoneyInput(s)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}
