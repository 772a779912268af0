package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "grota_financiamento/internal/adapter/http/dto/response"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InstallmentPaymentHandler handles HTTP requests for installment payments.
type InstallmentPaymentHandler struct {
	usecase  usecase.IInstallmentPaymentUseCase
	mockMode bool
}

// NewInstallmentPaymentHandler builds the handler; mockMode accepts malformed
// bodies as an empty payload, matching the mock payment gateway.
func NewInstallmentPaymentHandler(uc usecase.IInstallmentPaymentUseCase, mockMode bool) *InstallmentPaymentHandler {
	return &InstallmentPaymentHandler{usecase: uc, mockMode: mockMode}
}

// PayInstallment charges one installment through Mercado Pago. The body is the
// provider payload, either bare or wrapped as {"mp_payload": {...}}.
func (h *InstallmentPaymentHandler) PayInstallment(c *gin.Context) {
	contractID := c.Param("id")
	number, ok := installmentNumberParam(c)
	if !ok {
		return
	}
	log := logger.Get().WithFields(logrus.Fields{"contract_id": contractID, "installment": number})
	log.Info("[payment][handler] pay start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if h.mockMode {
			log.WithError(err).Warn("[payment][handler] payload invalid in mock mode; fallback to empty payload")
			mpPayload = json.RawMessage("{}")
		} else {
			log.WithError(err).Info("[payment][handler] invalid payload")
			writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
			return
		}
	}

	result, err := h.usecase.PayInstallment(c.Request.Context(), contractID, number, mpPayload)
	if err != nil {
		log.WithError(err).Warn("[payment][handler] pay failed")
		writeError(c, mapInstallmentPaymentError(err))
		return
	}
	log.WithFields(logrus.Fields{"payment_id": result.Payment.ID, "status": result.Payment.Status}).Info("[payment][handler] pay success")

	c.JSON(http.StatusOK, response.FromInstallmentPaymentResult(result))
}

// ListPayments returns every payment attempt recorded for a contract.
func (h *InstallmentPaymentHandler) ListPayments(c *gin.Context) {
	contractID := c.Param("id")

	payments, err := h.usecase.ListByContractID(c.Request.Context(), contractID)
	if err != nil {
		writeError(c, mapInstallmentPaymentError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromInstallmentPayments(payments))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapInstallmentPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInstallmentAlreadyPaid):
		return pkg.NewDomainErrorSimple("INSTALLMENT_ALREADY_PAID", "Installment already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "A payment for this installment is already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	default:
		return mapContractError(err)
	}
}
