package request

import (
	"encoding/json"
	"errors"
	"testing"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/pkg/money"

	"github.com/go-playground/validator/v10"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	return v
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":1500.5,"b":"R$ 68.500,50","c":null}`), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.A.Float64() != 1500.5 {
		t.Fatalf("expected 1500.5, got %v", body.A)
	}
	if body.B.Float64() != 68500.5 {
		t.Fatalf("expected 68500.5, got %v", body.B)
	}
	if body.C.Float64() != 0 {
		t.Fatalf("expected 0, got %v", body.C)
	}

	err := json.Unmarshal([]byte(`{"a":"abc"}`), &body)
	if !errors.Is(err, money.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestValidators(t *testing.T) {
	v := newValidator(t)

	ok := OccurrenceRequest{Date: "2024-03-10", Contact: "phone", Note: "promised payment"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := OccurrenceRequest{Date: "10/03/2024", Contact: "phone", Note: "x"}
	if err := v.Struct(bad); err == nil {
		t.Fatalf("expected date validation error")
	}

	if err := v.Struct(CustomerRequest{Name: "Ana", CPF: "529.982.247-25", Email: "ana@test.com", Phone: "11999999999"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Struct(CustomerRequest{Name: "Ana", CPF: "111.111.111-11", Email: "ana@test.com", Phone: "11999999999"}); err == nil {
		t.Fatalf("expected cpf validation error")
	}

	start := "2024-13-01"
	if err := v.Struct(PatchContractRequest{StartDate: &start}); err == nil {
		t.Fatalf("expected startDate validation error")
	}
	if err := v.Struct(PatchContractRequest{}); err != nil {
		t.Fatalf("empty patch should be valid: %v", err)
	}
}

func TestCreateProposalRequest_ToInput(t *testing.T) {
	dealer := "  dealer-1 "
	empty := " "
	r := CreateProposalRequest{
		Customer:      CustomerRequest{Name: "Ana", CPF: "52998224725", Email: "ana@test.com", Phone: "11"},
		Vehicle:       VehicleRequest{Brand: "Fiat", Model: "Argo", Year: 2022, Plate: "ABC1D23", FipeCode: "001004-9", FipeValue: 70000},
		FinancedValue: 50000,
		TermMonths:    48,
		DealerID:      &dealer,
		SellerID:      &empty,
	}
	in := r.ToInput()
	if in.CustomerName != "Ana" || in.VehicleYear != 2022 || in.FipeValue != 70000 || in.FinancedValue != 50000 || in.TermMonths != 48 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.DealerID == nil || *in.DealerID != "dealer-1" {
		t.Fatalf("expected trimmed dealer id, got %v", in.DealerID)
	}
	if in.SellerID != nil {
		t.Fatalf("expected nil seller id")
	}
}

func TestAppendEventRequest_Fields(t *testing.T) {
	from, to := "pending", "APPROVED"
	r := AppendEventRequest{Type: "status_updated", StatusFrom: &from, StatusTo: &to, Actor: "admin"}
	if r.EventType() != entities.ProposalEventStatusUpdated {
		t.Fatalf("unexpected type %s", r.EventType())
	}
	f := r.Fields()
	if f.StatusFrom == nil || *f.StatusFrom != entities.ProposalStatusPending || *f.StatusTo != entities.ProposalStatusApproved {
		t.Fatalf("unexpected fields %+v", f)
	}
}

func TestUpdateStatusRequest_NextStatus(t *testing.T) {
	r := UpdateStatusRequest{Status: " approved "}
	if r.NextStatus() != entities.ProposalStatusApproved {
		t.Fatalf("unexpected status %s", r.NextStatus())
	}
}
