package model

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so each layer can decide how to recover.
type Kind int

const (
	// KindUnknown is anything that was not classified by the domain.
	KindUnknown Kind = iota
	// KindValidation covers malformed or out-of-range input. Recovered by re-prompting.
	KindValidation
	// KindNotFound covers references to products that do not exist.
	KindNotFound
	// KindIO covers failures reading or writing the store and documents.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Standard error codes
const (
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidCost       = "INVALID_COST"
	ErrCodeStockLimit        = "STOCK_LIMIT_EXCEEDED"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyBatch        = "EMPTY_BATCH"
	ErrCodeInputClosed       = "INPUT_CLOSED"
	ErrCodeStoreRead         = "STORE_READ_FAILED"
	ErrCodeStoreWrite        = "STORE_WRITE_FAILED"
	ErrCodeCorruptRecord     = "CORRUPT_RECORD"
	ErrCodeDocumentWrite     = "DOCUMENT_WRITE_FAILED"
)

// DomainError is an error with a closed classification.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped copies of the sentinels below still compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind Kind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewIOError wraps err as an I/O failure with the given code.
func NewIOError(code, message string, err error) *DomainError {
	return &DomainError{
		Kind:    KindIO,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error with a custom message.
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// Common domain errors
var (
	ErrMissingField    = NewDomainError(KindValidation, ErrCodeMissingField, "Input cannot be empty")
	ErrInvalidQuantity = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCost     = NewDomainError(KindValidation, ErrCodeInvalidCost, "Cost price must be greater than zero")
	ErrStockLimit      = NewDomainError(KindValidation, ErrCodeStockLimit, "Quantity would take the stock past the maximum level")
	ErrProductNotFound = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrEmptyBatch      = NewDomainError(KindValidation, ErrCodeEmptyBatch, "Nothing to do: the batch has no items")
	ErrInputClosed     = NewDomainError(KindIO, ErrCodeInputClosed, "Input stream closed")
)

// InsufficientStockError reports a sale line that needs more units than are available.
type InsufficientStockError struct {
	Index     int
	Paid      int
	Free      int
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock! You need %d units (%d paid + %d free), but only %d available.",
		e.Required, e.Paid, e.Free, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientStock) match any shortfall.
func (e *InsufficientStockError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == ErrCodeInsufficientStock
}

// ErrInsufficientStock matches every *InsufficientStockError via errors.Is.
var ErrInsufficientStock = NewDomainError(KindValidation, ErrCodeInsufficientStock, "Not enough stock")

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return KindValidation
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindUnknown
}
