package domain

import (
	"context"
	"errors"

	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
)

// Service computes room fill state and placement candidates, scoped to
// one level and one cycle.
type Service interface {
	// RoomsByLevel reports every room on the level with its occupancy
	// rate for the cycle, counting only contracts whose active window
	// covers today or has no end.
	RoomsByLevel(ctx context.Context, level int, cycleID snowflake.ID) ([]RoomOccupancy, error)
	// CandidateRooms returns rooms a tenant of the given gender can
	// move into: empty rooms, or rooms with exactly one double-type
	// occupant of the same gender. An empty result is a valid answer,
	// not an error.
	CandidateRooms(ctx context.Context, gender tenantdomain.Gender, level int, cycleID snowflake.ID) ([]CandidateRoom, error)
}

var (
	ErrInvalidGender = errors.New("invalid_gender")
)
