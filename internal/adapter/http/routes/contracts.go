package routes

import (
	"grota_financiamento/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathContracts = "/contracts"

func addContractRoutes(rg *gin.RouterGroup, contractHandler *handlers.ContractHandler, paymentHandler *handlers.InstallmentPaymentHandler) {
	contracts := rg.Group(PathContracts)
	{
		contracts.POST("", contractHandler.FormalizeContract)
		contracts.GET("", contractHandler.ListContracts)
		contracts.GET("/:id", contractHandler.GetContract)
		contracts.PATCH("/:id", contractHandler.PatchContract)
		contracts.PATCH("/:id/installments/:number", contractHandler.SetInstallmentPaid)
		contracts.PATCH("/:id/installments/:number/due-date", contractHandler.UpdateInstallmentDueDate)
		contracts.POST("/:id/occurrences", contractHandler.AddOccurrence)
		contracts.GET("/:id/occurrences", contractHandler.ListOccurrences)
		contracts.GET("/:id/export", contractHandler.ExportSchedule)

		// Mercado Pago
		contracts.POST("/:id/installments/:number/payments", paymentHandler.PayInstallment)
		contracts.GET("/:id/payments", paymentHandler.ListPayments)
	}
}
