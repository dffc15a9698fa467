package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// ContractType decides slot consumption: a single contract takes the
// whole room, a double contract takes one of the two slots.
type ContractType string

const (
	ContractTypeSingle ContractType = "single"
	ContractTypeDouble ContractType = "double"
)

func (t ContractType) Valid() bool {
	return t == ContractTypeSingle || t == ContractTypeDouble
}

// OccupancyContract binds one tenant to one room for one billing
// cycle at an agreed price. Contracts with explicit own start/end
// dates are rolling (monthly) contracts whose active window is
// independent of the owning cycle's dates.
type OccupancyContract struct {
	ID               snowflake.ID  `gorm:"primaryKey" json:"contract_id"`
	CycleID          snowflake.ID  `gorm:"not null;index" json:"cycle_id"`
	TenantID         snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	RoomID           snowflake.ID  `gorm:"not null;index" json:"room_id"`
	AgreedPrice      int64         `gorm:"not null" json:"agreed_price"`
	ContractType     ContractType  `gorm:"type:text;not null" json:"contract_type"`
	DemandNoticeDate *time.Time    `gorm:"type:date" json:"demand_notice_date,omitempty"`
	OwnStartDate     *time.Time    `gorm:"type:date" json:"own_start_date,omitempty"`
	OwnEndDate       *time.Time    `gorm:"type:date" json:"own_end_date,omitempty"`
	Status           record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (OccupancyContract) TableName() string { return "occupancy_contracts" }

// Rolling reports whether the contract carries its own end date and is
// therefore subject to rollover rather than cycle-bound expiry.
func (c OccupancyContract) Rolling() bool {
	return c.OwnEndDate != nil
}

// ActiveWindowClause is the SQL predicate deciding whether a contract
// is currently occupying its room: either the contract has no own end
// date (its lifetime is the owning cycle's), or the end date has not
// passed yet. Bind the current date as the single parameter.
const ActiveWindowClause = "(own_end_date IS NULL OR own_end_date >= ?)"
