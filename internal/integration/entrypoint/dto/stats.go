// Package dto contains the request and response payloads of the HTTP API.
package dto

// BalanceResponse carries income and expense sums over a date range.
type BalanceResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// HistoryPointResponse is one chart bucket. Day is present only for the month
// timeframe; month is zero-based.
type HistoryPointResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     *int   `json:"day,omitempty"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// HistoryResponse wraps the ordered bucket series.
type HistoryResponse struct {
	Points []HistoryPointResponse `json:"points"`
}

// HistoryPeriodsResponse lists the years with recorded data.
type HistoryPeriodsResponse struct {
	Years []int `json:"years"`
}

// CategoryTotalResponse is the ledger sum for one category snapshot.
type CategoryTotalResponse struct {
	Category     string `json:"category"`
	CategoryIcon string `json:"categoryIcon"`
	Type         string `json:"type"`
	Total        string `json:"total"`
}

// CategoryTotalsResponse wraps per-category sums, largest first.
type CategoryTotalsResponse struct {
	Totals []CategoryTotalResponse `json:"totals"`
}
