package service

import (
	"errors"
)

// Error kinds. The api layer maps them to HTTP statuses with errors.Is.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUpstream           = errors.New("upstream error")
)

// Error is a client facing error: Msg is safe to return, Kind selects the status
// and Cause, when set, is only logged.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Message returns the text safe to show to clients.
func (e *Error) Message() string {
	return e.Msg
}

// Invalid wraps a validation message as ErrBadRequest.
func Invalid(msg string) *Error {
	return &Error{Kind: ErrBadRequest, Msg: msg}
}

// Client facing errors
var (
	ErrUserExists          = &Error{Kind: ErrConflict, Msg: "user already exists"}
	ErrBadLogin            = &Error{Kind: ErrInvalidCredentials, Msg: "invalid credentials"}
	ErrLedgerExists        = &Error{Kind: ErrConflict, Msg: "a ledger with that name already exists"}
	ErrLedgerNameRequired  = &Error{Kind: ErrBadRequest, Msg: "ledger name is required"}
	ErrLedgerRequired      = &Error{Kind: ErrBadRequest, Msg: "ledgerId is required"}
	ErrLedgerNotFound      = &Error{Kind: ErrNotFound, Msg: "ledger not found"}
	ErrTransactionNotFound = &Error{Kind: ErrNotFound, Msg: "transaction not found"}
	ErrAnalysisNotFound    = &Error{Kind: ErrNotFound, Msg: "analysis not found"}
	ErrNotAuthorized       = &Error{Kind: ErrForbidden, Msg: "not authorized"}
	ErrDivisionFactor      = &Error{Kind: ErrBadRequest, Msg: "divisionFactor must be at least 1"}
	ErrNotEnoughData       = &Error{Kind: ErrInsufficientData, Msg: "not enough transactions to analyze, at least 5 are required"}
	ErrAnalyzerUnavailable = &Error{Kind: ErrServiceUnavailable, Msg: "AI analysis is not available"}
)
