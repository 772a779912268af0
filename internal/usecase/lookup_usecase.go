package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidFipeCode = fmt.Errorf("invalid fipe code: %w", entities.ErrValidation)
	ErrInvalidCEP      = fmt.Errorf("invalid cep: %w", entities.ErrValidation)
)

// ILookupUseCase proxies the FIPE and CEP collaborators used by the proposal form.
// Failures surface as entities.ErrUpstreamUnavailable so the form can fall back to manual entry.
type ILookupUseCase interface {
	LookupFipe(ctx context.Context, code string) (entities.FipeQuote, error)
	LookupCEP(ctx context.Context, cep string) (entities.Address, error)
}

type LookupUseCase struct {
	vehicles  interfaces.IVehicleLookup
	addresses interfaces.IAddressLookup
}

var _ ILookupUseCase = (*LookupUseCase)(nil)

func NewLookupUseCase(vehicles interfaces.IVehicleLookup, addresses interfaces.IAddressLookup) *LookupUseCase {
	return &LookupUseCase{vehicles: vehicles, addresses: addresses}
}

func (u *LookupUseCase) LookupFipe(ctx context.Context, code string) (entities.FipeQuote, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.FipeQuote{}, ErrInvalidFipeCode
	}
	if u.vehicles == nil {
		return entities.FipeQuote{}, fmt.Errorf("fipe lookup not configured: %w", entities.ErrUpstreamUnavailable)
	}
	q, err := u.vehicles.LookupFipe(ctx, code)
	if err != nil {
		return entities.FipeQuote{}, upstream("fipe", code, err)
	}
	return q, nil
}

func (u *LookupUseCase) LookupCEP(ctx context.Context, cep string) (entities.Address, error) {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return entities.Address{}, ErrInvalidCEP
	}
	if u.addresses == nil {
		return entities.Address{}, fmt.Errorf("cep lookup not configured: %w", entities.ErrUpstreamUnavailable)
	}
	a, err := u.addresses.LookupCEP(ctx, digits)
	if err != nil {
		return entities.Address{}, upstream("cep", digits, err)
	}
	return a, nil
}

func upstream(kind, key string, err error) error {
	logger.Get().WithFields(logrus.Fields{"lookup": kind, "key": key}).WithError(err).Warn("[lookup][usecase] upstream failed")
	if errors.Is(err, entities.ErrUpstreamUnavailable) || errors.Is(err, entities.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s lookup: %w: %v", kind, entities.ErrUpstreamUnavailable, err)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
