package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service derives financial positions from payment history. All money
// values are integers in the smallest currency unit; the engine never
// touches floating point.
type Service interface {
	// OutstandingBalance is agreed price minus the sum of the
	// contract's active payments. No payments means the full price.
	OutstandingBalance(ctx context.Context, contractID snowflake.ID) (*Balance, error)
	// PaymentsWithRunningBalance lists every active payment in the
	// cycle with a per-contract running balance: accumulate ascending
	// by date, present descending by date.
	PaymentsWithRunningBalance(ctx context.Context, cycleID snowflake.ID) ([]PaymentRow, error)
	// TenantsWithOwingBalance returns only tenants still owing in the
	// cycle, ordered by owing amount descending then name.
	TenantsWithOwingBalance(ctx context.Context, cycleID snowflake.ID) ([]TenantBalance, error)
	// TenantsWithBalance returns every currently occupying tenant in
	// the cycle with their balance, overpaid ones included.
	TenantsWithBalance(ctx context.Context, cycleID snowflake.ID) ([]TenantBalance, error)
	// TenantsOwingByRoom returns the balances of a room's current
	// occupants in the cycle.
	TenantsOwingByRoom(ctx context.Context, roomID, cycleID snowflake.ID) ([]RoomTenantBalance, error)
}

var (
	ErrContractNotFound = errors.New("contract_not_found")
)
