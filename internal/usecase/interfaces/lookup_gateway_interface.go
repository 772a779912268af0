package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// IVehicleLookup resolves FIPE table quotes.
type IVehicleLookup interface {
	LookupFipe(ctx context.Context, code string) (entities.FipeQuote, error)
}

// IAddressLookup resolves Brazilian postal codes.
type IAddressLookup interface {
	LookupCEP(ctx context.Context, cep string) (entities.Address, error)
}
