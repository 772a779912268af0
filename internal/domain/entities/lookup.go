package entities

// FipeQuote is the FIPE reference price of a vehicle model/year.
type FipeQuote struct {
	Code  string  `json:"code"`
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Address is a postal-code lookup result.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
