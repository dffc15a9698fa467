package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// Gender drives room matching: two double contracts may share a room
// only when the occupants' genders match.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Tenant is a resident. Tenants persist across billing cycles and are
// bound to rooms through occupancy contracts.
type Tenant struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"tenant_id"`
	Name       string        `gorm:"type:text;not null" json:"name"`
	Gender     Gender        `gorm:"type:text" json:"gender"`
	Age        *int          `gorm:"column:age" json:"age,omitempty"`
	Course     *string       `gorm:"type:text" json:"course,omitempty"`
	OwnContact *string       `gorm:"type:text" json:"own_contact,omitempty"`
	NextOfKin  *string       `gorm:"type:text" json:"next_of_kin,omitempty"`
	KinContact *string       `gorm:"type:text" json:"kin_contact,omitempty"`
	Status     record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }
