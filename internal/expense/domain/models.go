package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// Expense is a non-tenant cost scoped to a billing cycle. The spend it
// contributes to cycle reporting is Quantity * UnitAmount.
type Expense struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"expense_id"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Quantity    int           `gorm:"not null;default:1" json:"quantity"`
	UnitAmount  int64         `gorm:"column:unit_amount;not null" json:"unit_amount"`
	CycleID     snowflake.ID  `gorm:"not null;index" json:"cycle_id"`
	RecordedBy  snowflake.ID  `gorm:"column:recorded_by;not null" json:"recorded_by"`
	Date        time.Time     `gorm:"type:date;not null" json:"date"`
	Status      record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Expense) TableName() string { return "expenses" }
