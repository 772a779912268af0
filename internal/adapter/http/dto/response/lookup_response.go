package response

import (
	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/pkg/money"
)

type FipeResponse struct {
	Code           string  `json:"code"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Value          float64 `json:"value"`
	ValueFormatted string  `json:"valueFormatted"`
}

func FromFipeQuote(q entities.FipeQuote) FipeResponse {
	return FipeResponse{
		Code:           q.Code,
		Brand:          q.Brand,
		Model:          q.Model,
		Year:           q.Year,
		Value:          q.Value,
		ValueFormatted: money.FormatCurrency(q.Value),
	}
}

type AddressResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func FromAddress(a entities.Address) AddressResponse {
	return AddressResponse{CEP: a.CEP, Street: a.Street, Neighborhood: a.Neighborhood, City: a.City, State: a.State}
}
