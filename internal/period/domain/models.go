package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// LapsedTenant is a tenant with no current occupancy in the reference
// cycle: either they never enrolled for it, or their rolling contract
// expired. The annotations describe the contract they lapsed from.
type LapsedTenant struct {
	TenantID      snowflake.ID `json:"tenant_id"`
	TenantName    string       `json:"tenant_name"`
	RoomName      string       `json:"room_name"`
	LastSeenCycle string       `json:"last_seen_cycle"`
	OwingAmount   int64        `json:"owing_amount"`
	PaysMonthly   bool         `json:"pays_monthly"`
	OwnEndDate    *time.Time   `json:"own_end_date,omitempty"`
}

// RolloverResult reports how many contracts a rollover moved. Zero is
// a legal outcome and is reported rather than treated as failure.
type RolloverResult struct {
	TargetCycleID snowflake.ID `json:"target_cycle_id"`
	AsOf          time.Time    `json:"as_of"`
	MovedCount    int64        `json:"moved_count"`
}
