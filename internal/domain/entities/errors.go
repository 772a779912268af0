package entities

import (
	"errors"
	"fmt"

	"grota_financiamento/pkg/calendar"
	"grota_financiamento/pkg/money"
)

// Error taxonomy shared by every use case. Adapters map these to transport errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrInvalidAmount       = money.ErrInvalidAmount
	ErrInvalidDate         = calendar.ErrInvalidDate
	ErrConflict            = errors.New("conflict")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrValidation          = errors.New("validation failed")
)

// TransitionError carries the rejected transition for callers deciding retry vs abort.
type TransitionError struct {
	ProposalID int64
	From       ProposalStatus
	To         ProposalStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("proposal %d: cannot move from %s to %s", e.ProposalID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// FieldError names the input field that failed validation.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}
