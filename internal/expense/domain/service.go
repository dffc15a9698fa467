package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateExpenseRequest struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitAmount  int64        `json:"unit_amount"`
	CycleID     snowflake.ID `json:"cycle_id"`
	RecordedBy  snowflake.ID `json:"recorded_by"`
	Date        string       `json:"date"`
}

type UpdateExpenseRequest struct {
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	UnitAmount  *int64  `json:"unit_amount"`
	Date        *string `json:"date"`
}

// ExpenseWithOperator carries the recording account's username.
type ExpenseWithOperator struct {
	Expense
	OperatorName string `json:"operator_name"`
}

// Service exposes miscellaneous expense records.
type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateExpenseRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*Expense, error)
	ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]ExpenseWithOperator, error)
	ListByDateRange(ctx context.Context, from time.Time, to *time.Time) ([]ExpenseWithOperator, error)
}

var (
	ErrExpenseNotFound    = errors.New("expense_not_found")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidDate        = errors.New("invalid_date")
)
