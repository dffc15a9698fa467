package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// Role separates the two account kinds the hostel runs with.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCustodian Role = "custodian"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustodian
}

// Account is an operator login. New accounts start unapproved and
// cannot log in until an admin approves them.
type Account struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"account_id"`
	Username  string        `gorm:"type:text;not null" json:"username"`
	Password  string        `gorm:"type:text;not null" json:"-"`
	Role      Role          `gorm:"type:text;not null" json:"role"`
	Approved  bool          `gorm:"not null;default:false" json:"approved"`
	Status    record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }
