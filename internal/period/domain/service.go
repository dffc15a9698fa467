package domain

import (
	"context"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
)

// Service classifies tenant status across cycles and carries rolling
// contracts forward.
type Service interface {
	// LapsedTenants returns tenants who either held a contract in a
	// cycle starting before the reference cycle and none in the
	// reference cycle, or whose rolling contract in the reference
	// cycle has already ended. Ordered by owing amount descending,
	// then name.
	LapsedTenants(ctx context.Context, referenceCycleID snowflake.ID) ([]LapsedTenant, error)
	// Rollover reassigns every contract with a rolling end date on or
	// after asOf to the target cycle, leaving tenant, room and price
	// untouched. Contracts without rolling dates are never moved.
	Rollover(ctx context.Context, targetCycleID snowflake.ID, asOf time.Time) (*RolloverResult, error)
	// TenantsInXNotY returns tenants holding a contract in cycle X
	// but none in cycle Y.
	TenantsInXNotY(ctx context.Context, cycleX, cycleY snowflake.ID) ([]tenantdomain.Tenant, error)
}

// ErrCycleNotFound is shared with the cycle catalog so callers match
// one error regardless of which layer rejected the cycle id.
var ErrCycleNotFound = cycledomain.ErrCycleNotFound
