package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// BillingCycle is a named, dated period (a semester or recess) that
// occupancy contracts and expenses are scoped to. Cycles are treated
// as immutable once contracts reference them.
type BillingCycle struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"cycle_id"`
	Name       string        `gorm:"type:text;not null" json:"name"`
	StartDate  time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time     `gorm:"type:date;not null" json:"end_date"`
	CostSingle *int64        `gorm:"column:cost_single" json:"cost_single,omitempty"`
	CostDouble *int64        `gorm:"column:cost_double" json:"cost_double,omitempty"`
	Status     record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (BillingCycle) TableName() string { return "billing_cycles" }
