package command

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest  = errors.New("invalid command request")
	ErrCommandRejected = errors.New("command rejected")
)

const (
	CodeUnknownNode           = "UNKNOWN_NODE"
	CodeUnknownResource       = "UNKNOWN_RESOURCE"
	CodeUnknownUpgrade        = "UNKNOWN_UPGRADE"
	CodeUnknownRecipe         = "UNKNOWN_RECIPE"
	CodeAlreadyOwned          = "ALREADY_OWNED"
	CodeInsufficientResources = "INSUFFICIENT_RESOURCES"
	CodeAutomationLocked      = "AUTOMATION_LOCKED"
	CodeNotSellable           = "NOT_SELLABLE"
	CodeNothingToSell         = "NOTHING_TO_SELL"
)

// RejectedError is returned when the engine refused a well-formed command.
// State is unchanged.
type RejectedError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrCommandRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCommandRejected, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrCommandRejected
}

func reject(code, format string, args ...any) *RejectedError {
	return &RejectedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *RejectedError) with(key string, value any) *RejectedError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}
