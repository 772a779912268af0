package routes

import (
	"grota_financiamento/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathLookups = "/lookups"

func addLookupRoutes(rg *gin.RouterGroup, lookupHandler *handlers.LookupHandler) {
	lookups := rg.Group(PathLookups)
	{
		lookups.GET("/fipe/:code", lookupHandler.LookupFipe)
		lookups.GET("/cep/:cep", lookupHandler.LookupCEP)
	}
}
