package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreatePaymentRequest struct {
	ContractID snowflake.ID `json:"contract_id"`
	Date       string       `json:"date"`
	Amount     int64        `json:"amount"`
}

type UpdatePaymentRequest struct {
	Date   *string `json:"date"`
	Amount *int64  `json:"amount"`
}

// Service exposes payment records.
type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	Update(ctx context.Context, id snowflake.ID, req UpdatePaymentRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*Payment, error)
	ListByContract(ctx context.Context, contractID snowflake.ID) ([]Payment, error)
	MostRecent(ctx context.Context, contractID snowflake.ID) (*Payment, error)
	ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]Payment, error)
}

var (
	ErrPaymentNotFound  = errors.New("payment_not_found")
	ErrInvalidContract  = errors.New("invalid_contract")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidDate      = errors.New("invalid_date")
)
