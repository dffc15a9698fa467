package service

import (
	"context"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	occupancydomain "github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func NewService(p Params) occupancydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("occupancy.service"),
		clock: p.Clock,
	}
}

type levelRoomRow struct {
	RoomID      snowflake.ID
	RoomName    string
	LevelNumber int
}

type occupantRow struct {
	RoomID       snowflake.ID
	ContractType contractdomain.ContractType
	Gender       tenantdomain.Gender
}

func (s *Service) RoomsByLevel(ctx context.Context, level int, cycleID snowflake.ID) ([]occupancydomain.RoomOccupancy, error) {
	rooms, err := s.loadRooms(ctx, level)
	if err != nil {
		return nil, err
	}

	// Occupant counts apply the active-window rule: a contract with an
	// expired own end date no longer fills its slot.
	var counts []struct {
		RoomID snowflake.ID
		Count  int
	}
	err = s.db.WithContext(ctx).Raw(
		`SELECT c.room_id, COUNT(*) AS count
		 FROM occupancy_contracts c
		 WHERE c.cycle_id = ?
		   AND `+contractdomain.ActiveWindowClause+`
		   AND c.status = ?
		 GROUP BY c.room_id`,
		cycleID,
		s.clock.Today(),
		record.StatusActive,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByRoom := make(map[snowflake.ID]int, len(counts))
	for _, row := range counts {
		countByRoom[row.RoomID] = row.Count
	}

	out := make([]occupancydomain.RoomOccupancy, 0, len(rooms))
	for _, room := range rooms {
		count := countByRoom[room.RoomID]
		rate := occupancydomain.RateForCount(count)
		if rate == occupancydomain.RateOverbooked {
			s.log.Warn("room overbooked",
				zap.Int64("room_id", int64(room.RoomID)),
				zap.Int64("cycle_id", int64(cycleID)),
				zap.Int("occupants", count),
			)
		}
		out = append(out, occupancydomain.RoomOccupancy{
			RoomID:      room.RoomID,
			RoomName:    room.RoomName,
			LevelNumber: room.LevelNumber,
			Occupants:   count,
			Rate:        rate,
			Overbooked:  rate == occupancydomain.RateOverbooked,
		})
	}
	return out, nil
}

func (s *Service) CandidateRooms(ctx context.Context, gender tenantdomain.Gender, level int, cycleID snowflake.ID) ([]occupancydomain.CandidateRoom, error) {
	if !gender.Valid() {
		return nil, occupancydomain.ErrInvalidGender
	}

	rooms, err := s.loadRooms(ctx, level)
	if err != nil {
		return nil, err
	}

	var occupants []occupantRow
	err = s.db.WithContext(ctx).Raw(
		`SELECT c.room_id, c.contract_type, t.gender
		 FROM occupancy_contracts c
		 JOIN tenants t ON t.id = c.tenant_id AND t.status = ?
		 WHERE c.cycle_id = ?
		   AND `+contractdomain.ActiveWindowClause+`
		   AND c.status = ?`,
		record.StatusActive,
		cycleID,
		s.clock.Today(),
		record.StatusActive,
	).Scan(&occupants).Error
	if err != nil {
		return nil, err
	}

	byRoom := map[snowflake.ID][]occupantRow{}
	for _, occupant := range occupants {
		byRoom[occupant.RoomID] = append(byRoom[occupant.RoomID], occupant)
	}

	out := []occupancydomain.CandidateRoom{}
	for _, room := range rooms {
		if qualifies(byRoom[room.RoomID], gender) {
			out = append(out, occupancydomain.CandidateRoom{
				RoomID:   room.RoomID,
				RoomName: room.RoomName,
			})
		}
	}
	return out, nil
}

// qualifies implements the placement rule: an empty room always
// qualifies; a room with one occupant qualifies only when that
// occupant holds a double contract and matches the requested gender.
// A single contract claims the whole room, and two occupants fill it.
func qualifies(occupants []occupantRow, gender tenantdomain.Gender) bool {
	switch len(occupants) {
	case 0:
		return true
	case 1:
		occupant := occupants[0]
		return occupant.ContractType == contractdomain.ContractTypeDouble && occupant.Gender == gender
	default:
		return false
	}
}

func (s *Service) loadRooms(ctx context.Context, level int) ([]levelRoomRow, error) {
	var rooms []levelRoomRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT r.id AS room_id, r.room_name, r.level_number
		 FROM rooms r
		 WHERE r.level_number = ? AND r.status = ?
		 ORDER BY r.room_name`,
		level,
		record.StatusActive,
	).Scan(&rooms).Error
	return rooms, err
}
