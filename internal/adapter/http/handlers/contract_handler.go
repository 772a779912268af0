package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	request "grota_financiamento/internal/adapter/http/dto/request"
	response "grota_financiamento/internal/adapter/http/dto/response"
	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContractHandler handles HTTP requests for billing contracts.
type ContractHandler struct {
	usecase usecase.IContractUseCase
}

func NewContractHandler(uc usecase.IContractUseCase) *ContractHandler {
	return &ContractHandler{usecase: uc}
}

// FormalizeContract handles POST /contracts for an approved proposal.
func (h *ContractHandler) FormalizeContract(c *gin.Context) {
	var req request.FormalizeContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	created, err := h.usecase.FormalizeContract(c.Request.Context(), req.ToInput())
	if err != nil {
		logger.Get().WithField("proposal_id", req.ProposalID).WithError(err).Warn("[contract][handler] formalize failed")
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromContract(created))
}

// ListContracts handles GET /contracts?status=EM_ATRASO.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	status := entities.BillingStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	if status != "" && !status.Valid() {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid contract status", http.StatusBadRequest))
		return
	}

	list, err := h.usecase.List(c.Request.Context(), interfaces.ContractFilter{Status: status})
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromContracts(list))
}

// GetContract handles GET /contracts/{id}: contract, customer, installments and occurrences.
func (h *ContractHandler) GetContract(c *gin.Context) {
	id := c.Param("id")

	details, err := h.usecase.GetDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromContractDetails(details))
}

func (h *ContractHandler) PatchContract(c *gin.Context) {
	id := c.Param("id")

	var req request.PatchContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.PatchContract(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromContract(updated))
}

// SetInstallmentPaid handles PATCH /contracts/{id}/installments/{number}.
func (h *ContractHandler) SetInstallmentPaid(c *gin.Context) {
	id := c.Param("id")
	number, ok := installmentNumberParam(c)
	if !ok {
		return
	}

	var req request.InstallmentPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.SetInstallmentPaid(c.Request.Context(), id, number, *req.Paid)
	if err != nil {
		logger.Get().WithFields(logrus.Fields{"contract_id": id, "installment": number}).WithError(err).Warn("[contract][handler] set paid failed")
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromContract(updated))
}

func (h *ContractHandler) UpdateInstallmentDueDate(c *gin.Context) {
	id := c.Param("id")
	number, ok := installmentNumberParam(c)
	if !ok {
		return
	}

	var req request.InstallmentDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.UpdateInstallmentDueDate(c.Request.Context(), id, number, req.DueDate)
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromContract(updated))
}

func (h *ContractHandler) AddOccurrence(c *gin.Context) {
	id := c.Param("id")

	var req request.OccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	occ, err := h.usecase.AddOccurrence(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromOccurrence(occ))
}

// ListOccurrences returns the collections log, newest first.
func (h *ContractHandler) ListOccurrences(c *gin.Context) {
	id := c.Param("id")

	list, err := h.usecase.ListOccurrences(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapContractError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromOccurrences(list))
}

// ExportSchedule streams the installment schedule as an .xlsx attachment.
func (h *ContractHandler) ExportSchedule(c *gin.Context) {
	id := c.Param("id")

	data, err := h.usecase.ExportSchedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrExportNotConfigured) {
			writeError(c, pkg.NewDomainErrorSimple("EXPORT_NOT_AVAILABLE", "Schedule export not available", http.StatusNotImplemented))
			return
		}
		writeError(c, mapContractError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "parcelas-"+id+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func installmentNumberParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Param("number")))
	if err != nil || n <= 0 {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_INSTALLMENT_NUMBER", "Invalid installment number", http.StatusBadRequest))
		return 0, false
	}
	return n, true
}

func mapContractError(err error) *pkg.AppError {
	return mapDomainError(err, "CONTRACT_NOT_FOUND", "Contract not found")
}
