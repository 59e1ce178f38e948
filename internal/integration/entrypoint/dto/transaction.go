// Package dto contains the request and response payloads of the HTTP API.
package dto

// CreateTransactionRequest is the payload for recording a transaction.
type CreateTransactionRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
}

// TransactionResponse is the public representation of a ledger entry.
type TransactionResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	CategoryIcon string `json:"categoryIcon"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	CreatedAt    string `json:"createdAt"`
}

// TransactionListResponse wraps a list of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
