package domain

import "github.com/bwmarrin/snowflake"

// Rate values for a two-slot room. RateOverbooked (101) is the
// integrity sentinel: more than two active contracts were recorded for
// one room and cycle. It signals an upstream write defect and is
// reported as data rather than clamped or hidden.
const (
	RateEmpty      = 0
	RateHalf       = 50
	RateFull       = 100
	RateOverbooked = 101
)

// RoomOccupancy is one room's fill state within a cycle.
type RoomOccupancy struct {
	RoomID      snowflake.ID `json:"room_id"`
	RoomName    string       `json:"room_name"`
	LevelNumber int          `json:"level_number"`
	Occupants   int          `json:"occupants"`
	Rate        int          `json:"occupancy_rate"`
	Overbooked  bool         `json:"overbooked"`
}

// CandidateRoom is a room a new tenant of the requested gender can be
// placed in for the cycle.
type CandidateRoom struct {
	RoomID   snowflake.ID `json:"room_id"`
	RoomName string       `json:"room_name"`
}

// RateForCount maps an active-contract count onto the occupancy rate.
func RateForCount(count int) int {
	switch count {
	case 0:
		return RateEmpty
	case 1:
		return RateHalf
	case 2:
		return RateFull
	default:
		return RateOverbooked
	}
}
