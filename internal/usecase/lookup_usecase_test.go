package usecase

import (
	"context"
	"errors"
	"testing"

	"grota_financiamento/internal/domain/entities"
	mock_interfaces "grota_financiamento/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestLookupUseCase_LookupFipe(t *testing.T) {
	ctx := context.Background()

	t.Run("blank code", func(t *testing.T) {
		uc := NewLookupUseCase(nil, nil)
		if _, err := uc.LookupFipe(ctx, " "); !errors.Is(err, ErrInvalidFipeCode) {
			t.Fatalf("expected ErrInvalidFipeCode, got %v", err)
		}
	})

	t.Run("transport failure is UpstreamUnavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vehicles := mock_interfaces.NewMockIVehicleLookup(ctrl)
		vehicles.EXPECT().LookupFipe(gomock.Any(), "001234-5").Return(entities.FipeQuote{}, errors.New("dial tcp: timeout"))

		uc := NewLookupUseCase(vehicles, nil)
		if _, err := uc.LookupFipe(ctx, "001234-5"); !errors.Is(err, entities.ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vehicles := mock_interfaces.NewMockIVehicleLookup(ctrl)
		vehicles.EXPECT().LookupFipe(gomock.Any(), "001234-5").Return(entities.FipeQuote{Code: "001234-5", Brand: "Fiat", Value: 70000}, nil)

		q, err := NewLookupUseCase(vehicles, nil).LookupFipe(ctx, " 001234-5 ")
		if err != nil || q.Value != 70000 {
			t.Fatalf("unexpected result %+v %v", q, err)
		}
	})
}

func TestLookupUseCase_LookupCEP(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed cep", func(t *testing.T) {
		uc := NewLookupUseCase(nil, nil)
		if _, err := uc.LookupCEP(ctx, "0131-100"); !errors.Is(err, ErrInvalidCEP) {
			t.Fatalf("expected ErrInvalidCEP, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		uc := NewLookupUseCase(nil, nil)
		if _, err := uc.LookupCEP(ctx, "01310-100"); !errors.Is(err, entities.ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("digits only reach the collaborator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		addresses := mock_interfaces.NewMockIAddressLookup(ctrl)
		addresses.EXPECT().LookupCEP(gomock.Any(), "01310100").Return(entities.Address{CEP: "01310-100", City: "São Paulo", State: "SP"}, nil)

		a, err := NewLookupUseCase(nil, addresses).LookupCEP(ctx, "01310-100")
		if err != nil || a.State != "SP" {
			t.Fatalf("unexpected result %+v %v", a, err)
		}
	})

	t.Run("unknown cep stays NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		addresses := mock_interfaces.NewMockIAddressLookup(ctrl)
		addresses.EXPECT().LookupCEP(gomock.Any(), "99999999").Return(entities.Address{}, entities.ErrNotFound)

		_, err := NewLookupUseCase(nil, addresses).LookupCEP(ctx, "99999-999")
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
