package domain

import "github.com/bwmarrin/snowflake"

// Summary is the headline figures for one billing cycle, assembled in
// a single read so the numbers are mutually consistent.
type Summary struct {
	CycleID           snowflake.ID `json:"cycle_id"`
	ActiveTenantCount int64        `json:"active_tenant_count"`
	FreeSlots         int64        `json:"free_slots"`
	TotalPayments     int64        `json:"total_payments"`
	TotalOutstanding  int64        `json:"total_outstanding"`
	TotalExpenses     int64        `json:"total_expenses"`
	LapsedTenantCount int64        `json:"lapsed_tenant_count"`
}
