package domain

import (
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
)

// SlotsPerRoom is the fixed capacity of every room: a single contract
// consumes both slots, a double contract consumes one.
const SlotsPerRoom = 2

// Room is a physical unit on a level.
type Room struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"room_id"`
	LevelNumber int           `gorm:"not null;index" json:"level_number"`
	RoomName    string        `gorm:"type:text;not null" json:"room_name"`
	Status      record.Status `gorm:"type:text;not null;default:'active'" json:"-"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Room) TableName() string { return "rooms" }
