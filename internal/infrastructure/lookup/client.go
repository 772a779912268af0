package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg/money"

	"github.com/sirupsen/logrus"
)

const (
	DefaultFipeBaseURL = "https://brasilapi.com.br/api"
	DefaultCEPBaseURL  = "https://viacep.com.br/ws"
	maxBodyBytes       = 1 << 20
)

// Client queries the public FIPE price table and the ViaCEP postal-code service.
// Every transport failure or non-2xx answer other than 404 is reported as
// entities.ErrUpstreamUnavailable.
type Client struct {
	fipeBaseURL string
	cepBaseURL  string
	http        *http.Client
}

var (
	_ interfaces.IVehicleLookup = (*Client)(nil)
	_ interfaces.IAddressLookup = (*Client)(nil)
)

func NewClient(fipeBaseURL, cepBaseURL string, timeout time.Duration) *Client {
	if fipeBaseURL == "" {
		fipeBaseURL = DefaultFipeBaseURL
	}
	if cepBaseURL == "" {
		cepBaseURL = DefaultCEPBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		fipeBaseURL: strings.TrimRight(fipeBaseURL, "/"),
		cepBaseURL:  strings.TrimRight(cepBaseURL, "/"),
		http:        &http.Client{Timeout: timeout},
	}
}

type fipePrice struct {
	Valor      string `json:"valor"`
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	AnoModelo  int    `json:"anoModelo"`
	CodigoFipe string `json:"codigoFipe"`
}

// LookupFipe returns the newest model-year quote for code.
func (c *Client) LookupFipe(ctx context.Context, code string) (entities.FipeQuote, error) {
	var prices []fipePrice
	if err := c.getJSON(ctx, c.fipeBaseURL+"/fipe/preco/v1/"+url.PathEscape(code), &prices); err != nil {
		return entities.FipeQuote{}, err
	}
	if len(prices) == 0 {
		return entities.FipeQuote{}, fmt.Errorf("fipe %s: %w", code, entities.ErrNotFound)
	}

	best := prices[0]
	for _, p := range prices[1:] {
		if p.AnoModelo > best.AnoModelo {
			best = p
		}
	}
	value, err := money.ParseMoneyInput(best.Valor)
	if err != nil {
		return entities.FipeQuote{}, fmt.Errorf("fipe %s: unreadable price %q: %w", code, best.Valor, entities.ErrUpstreamUnavailable)
	}
	quote := entities.FipeQuote{
		Code:  code,
		Brand: best.Marca,
		Model: best.Modelo,
		Year:  best.AnoModelo,
		Value: value,
	}
	if best.CodigoFipe != "" {
		quote.Code = best.CodigoFipe
	}
	return quote, nil
}

type viaCEPAddress struct {
	CEP        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	UF         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro"`
}

// LookupCEP expects cep to be 8 digits.
func (c *Client) LookupCEP(ctx context.Context, cep string) (entities.Address, error) {
	var a viaCEPAddress
	if err := c.getJSON(ctx, c.cepBaseURL+"/"+url.PathEscape(cep)+"/json/", &a); err != nil {
		return entities.Address{}, err
	}
	// ViaCEP answers 200 with {"erro": true} (or "true") for unknown codes.
	if flag := strings.Trim(string(a.Erro), `"`); flag == "true" {
		return entities.Address{}, fmt.Errorf("cep %s: %w", cep, entities.ErrNotFound)
	}
	return entities.Address{
		CEP:          strings.ReplaceAll(a.CEP, "-", ""),
		Street:       a.Logradouro,
		Neighborhood: a.Bairro,
		City:         a.Localidade,
		State:        a.UF,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %v: %w", endpoint, err, entities.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	logger.Get().WithFields(logrus.Fields{
		"url":         endpoint,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("[lookup][http] response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", endpoint, entities.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("GET %s: status %d: %s: %w", endpoint, resp.StatusCode, strings.TrimSpace(string(body)), entities.ErrUpstreamUnavailable)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %v: %w", endpoint, err, entities.ErrUpstreamUnavailable)
	}
	return nil
}
