// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found or not owned by the caller.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrInvalidTransactionDate is returned when the transaction date is missing or malformed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrCategoryNotFoundForTransaction is returned when the named category does not exist for the user.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrInvalidTimeframe is returned when a history timeframe is not month or year.
	ErrInvalidTimeframe = errors.New("invalid timeframe")

	// ErrInvalidHistoryMonth is returned when the month index for a month history query is out of range.
	ErrInvalidHistoryMonth = errors.New("month must be between 0 and 11")

	// ErrInvalidDateRange is returned when a query range has from after to.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrConsistencyViolation is returned when a rollup bucket no longer matches
	// the ledger (e.g. a decrement would drive it negative). Never expected in
	// correct operation; the surrounding write is aborted, not masked.
	ErrConsistencyViolation = errors.New("ledger rollup consistency violation")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   LedgerErrorCode = "LGR-010001"
	ErrCodeInvalidTransactionAmount LedgerErrorCode = "LGR-010002"
	ErrCodeInvalidTransactionDate   LedgerErrorCode = "LGR-010003"
	ErrCodeDescriptionTooLong       LedgerErrorCode = "LGR-010004"
	ErrCodeLedgerCategoryNotFound   LedgerErrorCode = "LGR-010005"
	ErrCodeTransactionNotFound      LedgerErrorCode = "LGR-010006"
	ErrCodeInvalidTimeframe         LedgerErrorCode = "LGR-010007"
	ErrCodeInvalidHistoryMonth      LedgerErrorCode = "LGR-010008"
	ErrCodeInvalidDateRange         LedgerErrorCode = "LGR-010009"
	ErrCodeMissingTransactionFields LedgerErrorCode = "LGR-010010"

	// Consistency errors (02XXXX)
	ErrCodeConsistencyViolation LedgerErrorCode = "LGR-020001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
