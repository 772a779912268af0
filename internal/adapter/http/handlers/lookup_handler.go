package handlers

import (
	"net/http"

	response "grota_financiamento/internal/adapter/http/dto/response"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase"

	"github.com/gin-gonic/gin"
)

// LookupHandler proxies the FIPE and CEP reference services for the portal forms.
type LookupHandler struct {
	usecase usecase.ILookupUseCase
}

func NewLookupHandler(uc usecase.ILookupUseCase) *LookupHandler {
	return &LookupHandler{usecase: uc}
}

func (h *LookupHandler) LookupFipe(c *gin.Context) {
	code := c.Param("code")

	quote, err := h.usecase.LookupFipe(c.Request.Context(), code)
	if err != nil {
		logger.Get().WithField("fipe_code", code).WithError(err).Info("[lookup][handler] fipe failed")
		writeError(c, mapDomainError(err, "FIPE_NOT_FOUND", "Vehicle not found"))
		return
	}

	c.JSON(http.StatusOK, response.FromFipeQuote(quote))
}

func (h *LookupHandler) LookupCEP(c *gin.Context) {
	cep := c.Param("cep")

	addr, err := h.usecase.LookupCEP(c.Request.Context(), cep)
	if err != nil {
		logger.Get().WithField("cep", cep).WithError(err).Info("[lookup][handler] cep failed")
		writeError(c, mapDomainError(err, "CEP_NOT_FOUND", "Address not found"))
		return
	}

	c.JSON(http.StatusOK, response.FromAddress(addr))
}

// Ping handles GET /ping.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
