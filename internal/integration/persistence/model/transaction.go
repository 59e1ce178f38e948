// Package model contains the database models for persistence.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type         string          `gorm:"type:varchar(10);not null"`
	Category     string          `gorm:"type:varchar(50);not null"`
	CategoryIcon string          `gorm:"type:varchar(50);not null"`
	Description  string          `gorm:"type:varchar(255)"`
	Date         time.Time       `gorm:"not null;index:idx_transactions_user_date"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts the model to a domain entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Amount:       m.Amount,
		Type:         entity.TransactionType(m.Type),
		Category:     m.Category,
		CategoryIcon: m.CategoryIcon,
		Description:  m.Description,
		Date:         m.Date.UTC(),
		CreatedAt:    m.CreatedAt,
	}
}

// FromEntity populates the model from a domain entity.
func (m *TransactionModel) FromEntity(t *entity.Transaction) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.Amount = t.Amount
	m.Type = string(t.Type)
	m.Category = t.Category
	m.CategoryIcon = t.CategoryIcon
	m.Description = t.Description
	m.Date = t.Date.UTC()
	m.CreatedAt = t.CreatedAt
}
