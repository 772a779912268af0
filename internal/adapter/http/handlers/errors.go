package handlers

import (
	"errors"
	"net/http"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/pkg"
	"grota_financiamento/pkg/money"

	"github.com/gin-gonic/gin"
)

// mapDomainError turns a use-case error into the HTTP error contract.
// notFoundCode names the resource the route is about (PROPOSAL_NOT_FOUND, ...).
func mapDomainError(err error, notFoundCode, notFoundMessage string) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInstallmentNotFound):
		return pkg.NewDomainErrorSimple("INSTALLMENT_NOT_FOUND", "Installment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrContractNotFound):
		return pkg.NewDomainErrorSimple("CONTRACT_NOT_FOUND", "Contract not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple(notFoundCode, notFoundMessage, http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotApproved):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_APPROVED", "Proposal not approved", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status transition not allowed", err, http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", "Invalid amount", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidDate):
		return pkg.NewDomainError("INVALID_DATE", "Invalid date, expected YYYY-MM-DD", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		return validationError(err)
	case errors.Is(err, usecase.ErrContractAlreadyExists):
		return pkg.NewDomainErrorSimple("CONTRACT_ALREADY_EXISTS", "Contract already exists for proposal", http.StatusConflict)
	case errors.Is(err, entities.ErrConflict):
		return pkg.NewDomainError("CONFLICT", "Resource was modified concurrently, retry", err, http.StatusConflict)
	case errors.Is(err, entities.ErrUpstreamUnavailable):
		return pkg.NewDomainError("UPSTREAM_UNAVAILABLE", "Upstream service unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func validationError(err error) *pkg.AppError {
	var fe *entities.FieldError
	if errors.As(err, &fe) {
		return pkg.NewDomainError("VALIDATION_ERROR", fe.Error(), err, http.StatusBadRequest)
	}
	return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
}

// bindError maps a ShouldBindJSON failure. Money text that cannot be parsed
// surfaces as INVALID_AMOUNT; everything else is a malformed request.
func bindError(err error) *pkg.AppError {
	if errors.Is(err, money.ErrInvalidAmount) {
		return pkg.NewDomainError("INVALID_AMOUNT", "Invalid amount", err, http.StatusBadRequest)
	}
	return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
