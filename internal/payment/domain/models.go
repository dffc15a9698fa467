package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// Payment is a money receipt against an occupancy contract. Payments
// are append-only in spirit; the sum of a contract's active payments
// defines its outstanding balance.
type Payment struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"payment_id"`
	ContractID snowflake.ID  `gorm:"not null;index" json:"contract_id"`
	Date       time.Time     `gorm:"type:date;not null" json:"date"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Status     record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
