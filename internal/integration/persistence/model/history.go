// Package model contains the database models for persistence.
package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MonthHistoryModel represents the month_histories table. One row per
// (user, year, month, day) bucket; month is zero based.
type MonthHistoryModel struct {
	UserID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Year    int             `gorm:"primaryKey"`
	Month   int             `gorm:"primaryKey"`
	Day     int             `gorm:"primaryKey"`
	Income  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Expense decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for the MonthHistoryModel.
func (MonthHistoryModel) TableName() string {
	return "month_histories"
}

// ToEntity converts the model to a domain entity.
func (m *MonthHistoryModel) ToEntity() *entity.MonthHistory {
	return &entity.MonthHistory{
		UserID:  m.UserID,
		Year:    m.Year,
		Month:   m.Month,
		Day:     m.Day,
		Income:  m.Income,
		Expense: m.Expense,
	}
}

// YearHistoryModel represents the year_histories table. One row per
// (user, year, month) bucket; month is zero based.
type YearHistoryModel struct {
	UserID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Year    int             `gorm:"primaryKey"`
	Month   int             `gorm:"primaryKey"`
	Income  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Expense decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for the YearHistoryModel.
func (YearHistoryModel) TableName() string {
	return "year_histories"
}

// ToEntity converts the model to a domain entity.
func (m *YearHistoryModel) ToEntity() *entity.YearHistory {
	return &entity.YearHistory{
		UserID:  m.UserID,
		Year:    m.Year,
		Month:   m.Month,
		Income:  m.Income,
		Expense: m.Expense,
	}
}
