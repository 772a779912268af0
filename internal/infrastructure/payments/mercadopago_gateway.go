package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/sirupsen/logrus"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway charges installments through the Mercado Pago payments API.
// In mock mode no request leaves the process.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mock bool) (*MercadoPagoGateway, error) {
	if mock {
		logger.Get().Info("[payment][gateway] mock mode enabled")
		return NewMockGateway(), nil
	}

	if accessToken == "" {
		logger.Get().Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.LogError("payment", "NewMercadoPagoGateway", "sdk-config", nil, err)
		return nil, err
	}
	logger.Get().Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), now: time.Now}, nil
}

func NewMockGateway() *MercadoPagoGateway {
	return &MercadoPagoGateway{mockMode: true, now: time.Now}
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		return g.mockCreate(requestPayload)
	}

	if g == nil || g.client == nil {
		logger.Get().Warn("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log := logger.Get().WithField("payload_len", len(requestPayload))
	log.Info("[payment][gateway] create start")

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.WithError(err).Warn("[payment][gateway] payload unmarshal failed")
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.WithError(err).Warn("[payment][gateway] sdk create failed")
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	log.WithFields(logrus.Fields{
		"provider_payment_id": id,
		"provider_status":     resp.Status,
	}).Info("[payment][gateway] create success")

	return id, resp.Status, b, nil
}

// mockStatus follows the sandbox cardholder-name convention: APRO approves,
// CONT stays pending and OTHE is rejected. Anything else approves.
func mockStatus(payload map[string]any) (status, detail string) {
	name := ""
	if payer, ok := payload["payer"].(map[string]any); ok {
		name, _ = payer["first_name"].(string)
	}
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CONT":
		return "in_process", "pending_contingency"
	case "OTHE":
		return "rejected", "cc_rejected_other_reason"
	default:
		return "approved", "accredited"
	}
}

func (g *MercadoPagoGateway) mockCreate(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	status, detail := mockStatus(resp)
	resp["id"] = id
	resp["status"] = status
	resp["status_detail"] = detail
	resp["live_mode"] = false
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = now.Format(time.RFC3339Nano)
	}
	if status == "approved" {
		if _, ok := resp["date_approved"]; !ok {
			resp["date_approved"] = now.Format(time.RFC3339Nano)
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	logger.Get().WithFields(logrus.Fields{
		"provider_payment_id": id,
		"provider_status":     status,
		"external_reference":  resp["external_reference"],
	}).Info("[payment][gateway] mock create success")
	return id, status, b, nil
}
