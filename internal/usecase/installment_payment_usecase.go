package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidMPPayload               = fmt.Errorf("invalid mercado pago payload: %w", entities.ErrValidation)
	ErrInstallmentAlreadyPaid         = fmt.Errorf("installment already paid: %w", entities.ErrConflict)
	ErrPaymentInProgress              = fmt.Errorf("installment payment in progress: %w", entities.ErrConflict)
	ErrPaymentGatewayNotConfigured    = fmt.Errorf("payment gateway not configured: %w", entities.ErrUpstreamUnavailable)
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// InstallmentPaymentResult is the stored attempt plus the contract as it stands afterwards.
type InstallmentPaymentResult struct {
	Payment  entities.InstallmentPayment
	Contract entities.BillingContract
}

// IInstallmentPaymentUseCase settles installments through the payment provider.
//
//   - POST /contracts/{id}/installments/{number}/payments => PayInstallment()
//   - GET /contracts/{id}/payments                        => ListByContractID()
type IInstallmentPaymentUseCase interface {
	PayInstallment(ctx context.Context, contractID string, number int, mpPayload json.RawMessage) (InstallmentPaymentResult, error)
	ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error)
}

type InstallmentPaymentUseCase struct {
	repo      interfaces.IInstallmentPaymentRepository
	contracts IContractUseCase
	gateway   interfaces.IPaymentGateway
	deps

	mu       sync.Mutex
	inflight map[string]struct{}
}

var _ IInstallmentPaymentUseCase = (*InstallmentPaymentUseCase)(nil)

func NewInstallmentPaymentUseCase(repo interfaces.IInstallmentPaymentRepository, contracts IContractUseCase, gateway interfaces.IPaymentGateway, opts ...Option) *InstallmentPaymentUseCase {
	return &InstallmentPaymentUseCase{
		repo:      repo,
		contracts: contracts,
		gateway:   gateway,
		deps:      newDeps(opts),
		inflight:  map[string]struct{}{},
	}
}

func (u *InstallmentPaymentUseCase) PayInstallment(ctx context.Context, contractID string, number int, mpPayload json.RawMessage) (InstallmentPaymentResult, error) {
	log := logger.Get().WithFields(logrus.Fields{"contract_id": contractID, "installment": number})
	log.WithField("payload_len", len(mpPayload)).Info("[payment][usecase] pay-installment start")

	mockMode := u.paymentGatewayMock
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return InstallmentPaymentResult{}, ErrInvalidContractID
	}
	if number <= 0 {
		return InstallmentPaymentResult{}, ErrInstallmentNotFound
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Warn("[payment][usecase] invalid payload")
			return InstallmentPaymentResult{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		log.Warn("[payment][usecase] gateway not configured")
		return InstallmentPaymentResult{}, ErrPaymentGatewayNotConfigured
	}

	// One attempt per installment at a time: the paid check, the charge and
	// the settle all run under the claim.
	release, err := u.claim(ctx, contractID, number)
	if err != nil {
		log.WithError(err).Warn("[payment][usecase] installment busy")
		return InstallmentPaymentResult{}, err
	}
	defer release()

	contract, err := u.contracts.GetByID(ctx, contractID)
	if err != nil {
		return InstallmentPaymentResult{}, err
	}
	installment, err := contract.Installment(number)
	if err != nil {
		return InstallmentPaymentResult{}, ErrInstallmentNotFound
	}
	if installment.Paid {
		return InstallmentPaymentResult{}, ErrInstallmentAlreadyPaid
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		log.WithError(err).Warn("[payment][usecase] payload is not an object")
		return InstallmentPaymentResult{}, ErrInvalidMPPayload
	}
	if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Warn("[payment][usecase] missing payment_method_id")
		return InstallmentPaymentResult{}, ErrInvalidMPPayload
	}
	if !mockMode {
		normalizeSandboxPayerFromUserID(reqMap)
		ensurePayerDefaults(reqMap, contract.Customer.Email)
	}
	if !mockMode && !hasPayer(reqMap) {
		log.Warn("[payment][usecase] missing/invalid payer")
		return InstallmentPaymentResult{}, ErrInvalidMPPayload
	}

	// Mercado Pago uses external_reference to reconcile notifications.
	reference := contractID + ":" + strconv.Itoa(number)
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = reference
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Parcela %d do contrato %s", number, contractID)
	}
	// The source of truth for amount is the installment in DB.
	reqMap["transaction_amount"] = installment.Amount
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return InstallmentPaymentResult{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.WithError(err).Warn("[payment][usecase] payment gateway failed")
		return InstallmentPaymentResult{}, mapGatewayError(err)
	}
	log.WithFields(logrus.Fields{
		"provider_payment_id": providerPaymentID,
		"provider_status":     providerStatus,
	}).Info("[payment][usecase] payment gateway answered")

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.WithError(err).Warn("[payment][usecase] provider response unmarshal failed")
	}

	p := entities.InstallmentPayment{
		ID:                providerPaymentID,
		ContractID:        contractID,
		InstallmentNumber: number,
		Amount:            installment.Amount,
		Date:              u.now(),
		Status:            entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw:      providerResp,
		MPPayload:         parsed,
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if err := u.repo.Create(ctx, p); err != nil {
		logger.LogError("payment", "PayInstallment", "create", map[string]any{"contract_id": contractID, "payment_id": p.ID}, err)
		return InstallmentPaymentResult{}, err
	}

	if p.Status == entities.PaymentStatusAprovado {
		contract, err = u.contracts.SetInstallmentPaid(ctx, contractID, number, true)
		if err != nil {
			logger.LogError("payment", "PayInstallment", "set-paid", map[string]any{"contract_id": contractID, "payment_id": p.ID}, err)
			return InstallmentPaymentResult{}, err
		}
	}
	log.WithFields(logrus.Fields{"payment_id": p.ID, "status": p.Status}).Info("[payment][usecase] pay-installment success")
	return InstallmentPaymentResult{Payment: p, Contract: contract}, nil
}

func (u *InstallmentPaymentUseCase) ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error) {
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return nil, ErrInvalidContractID
	}
	if _, err := u.contracts.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return u.repo.ListByContractID(ctx, contractID)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills payer.email from the contract customer when the caller sent neither id nor email.
func ensurePayerDefaults(m map[string]any, customerEmail string) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	switch {
	case strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")) != "":
		payer["email"] = strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	case strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-"):
		payer["email"] = "test_user_br@testuser.com"
	case strings.TrimSpace(customerEmail) != "":
		payer["email"] = strings.TrimSpace(customerEmail)
	}
}

func normalizeSandboxPayerFromUserID(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		return
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	accessToken := strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if !strings.HasPrefix(accessToken, "TEST-") {
		return
	}
	configuredUserID := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"))
	configuredEmail := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"))
	if configuredUserID == "" || configuredEmail == "" {
		return
	}

	rawID := strings.TrimSpace(fmt.Sprintf("%v", payer["id"]))
	if rawID != configuredUserID {
		return
	}
	payer["email"] = configuredEmail
	delete(payer, "id")
	logger.Get().Info("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

// claim reserves contractID:number for one payment attempt, inside this process
// and, when a locker is configured, across instances. The key differs from the
// contract lock so settling through SetInstallmentPaid can still take it.
func (u *InstallmentPaymentUseCase) claim(ctx context.Context, contractID string, number int) (func(), error) {
	key := contractID + ":" + strconv.Itoa(number)

	u.mu.Lock()
	if _, busy := u.inflight[key]; busy {
		u.mu.Unlock()
		return nil, ErrPaymentInProgress
	}
	u.inflight[key] = struct{}{}
	u.mu.Unlock()

	drop := func() {
		u.mu.Lock()
		delete(u.inflight, key)
		u.mu.Unlock()
	}
	unlock, err := u.lock(ctx, "payment", key)
	if err != nil {
		drop()
		if errors.Is(err, entities.ErrConflict) {
			return nil, ErrPaymentInProgress
		}
		return nil, err
	}
	return func() {
		unlock()
		drop()
	}, nil
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return fmt.Errorf("%w: %v", entities.ErrUpstreamUnavailable, err)
	}
}
