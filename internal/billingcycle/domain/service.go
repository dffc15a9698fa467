package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateCycleRequest struct {
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CostSingle *int64 `json:"cost_single"`
	CostDouble *int64 `json:"cost_double"`
}

type UpdateCycleRequest struct {
	Name       *string `json:"name"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CostSingle *int64  `json:"cost_single"`
	CostDouble *int64  `json:"cost_double"`
}

// Service exposes billing cycle records.
type Service interface {
	Create(ctx context.Context, req CreateCycleRequest) (*BillingCycle, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateCycleRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*BillingCycle, error)
	List(ctx context.Context) ([]BillingCycle, error)
}

// DateFormat is the wire format for cycle and contract dates.
const DateFormat = "2006-01-02"

// ParseDate parses a wire-format date into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, value, time.UTC)
}

var (
	ErrCycleNotFound = errors.New("cycle_not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidDates  = errors.New("invalid_dates")
)
