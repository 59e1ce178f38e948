// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Timeframe selects the granularity of a history query.
type Timeframe string

const (
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// MonthHistory is one day-level rollup bucket: the income and expense sums of
// all of a user's transactions on a single calendar day. Month is zero-based
// (0-11). Buckets are a precomputed cache over the ledger and are never
// deleted; a zero-valued bucket is a valid state.
type MonthHistory struct {
	UserID  uuid.UUID
	Year    int
	Month   int
	Day     int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// YearHistory is one month-level rollup bucket aggregating a user's
// transactions within a calendar month. Month is zero-based (0-11).
type YearHistory struct {
	UserID  uuid.UUID
	Year    int
	Month   int
	Income  decimal.Decimal
	Expense decimal.Decimal
}
