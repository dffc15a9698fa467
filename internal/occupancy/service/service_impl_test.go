package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	occupancydomain "github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRoomsByLevelRates(t *testing.T) {
	db := setupOccupancyTestDB(t)
	insertOccCycle(t, db, 1)
	insertOccRoom(t, db, 1, 2, "A101") // empty
	insertOccRoom(t, db, 2, 2, "A102") // one double occupant
	insertOccRoom(t, db, 3, 2, "A103") // full
	insertOccRoom(t, db, 4, 2, "A104") // overbooked
	insertOccTenant(t, db, 1, "female")
	insertOccTenant(t, db, 2, "female")
	insertOccTenant(t, db, 3, "male")
	insertOccTenant(t, db, 4, "male")
	insertOccTenant(t, db, 5, "male")
	insertOccTenant(t, db, 6, "male")
	insertOccContract(t, db, 1, 1, 1, 2, "double", nil)
	insertOccContract(t, db, 2, 1, 2, 3, "double", nil)
	insertOccContract(t, db, 3, 1, 3, 3, "double", nil)
	insertOccContract(t, db, 4, 1, 4, 4, "double", nil)
	insertOccContract(t, db, 5, 1, 5, 4, "double", nil)
	insertOccContract(t, db, 6, 1, 6, 4, "double", nil)

	svc := newOccupancyService(db)
	rows, err := svc.RoomsByLevel(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("rooms by level: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rooms, got %d", len(rows))
	}

	want := map[string]int{
		"A101": occupancydomain.RateEmpty,
		"A102": occupancydomain.RateHalf,
		"A103": occupancydomain.RateFull,
		"A104": occupancydomain.RateOverbooked,
	}
	for _, row := range rows {
		if row.Rate != want[row.RoomName] {
			t.Fatalf("room %s: expected rate %d, got %d", row.RoomName, want[row.RoomName], row.Rate)
		}
		if row.RoomName == "A104" && !row.Overbooked {
			t.Fatalf("room A104 should carry the overbooked flag")
		}
		if row.RoomName != "A104" && row.Overbooked {
			t.Fatalf("room %s should not be overbooked", row.RoomName)
		}
	}
}

func TestRoomsByLevelIgnoresExpiredRollingContracts(t *testing.T) {
	db := setupOccupancyTestDB(t)
	insertOccCycle(t, db, 1)
	insertOccRoom(t, db, 1, 1, "B101")
	insertOccTenant(t, db, 1, "male")
	past := "2024-09-01"
	insertOccContract(t, db, 1, 1, 1, 1, "double", &past)

	svc := newOccupancyService(db)
	rows, err := svc.RoomsByLevel(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("rooms by level: %v", err)
	}
	if len(rows) != 1 || rows[0].Rate != occupancydomain.RateEmpty {
		t.Fatalf("expected the room back to empty, got %+v", rows)
	}
}

func TestCandidateRoomsGenderRules(t *testing.T) {
	db := setupOccupancyTestDB(t)
	insertOccCycle(t, db, 1)
	insertOccRoom(t, db, 1, 3, "C301") // empty: qualifies
	insertOccRoom(t, db, 2, 3, "C302") // one female double: qualifies for female
	insertOccRoom(t, db, 3, 3, "C303") // one male double: wrong gender
	insertOccRoom(t, db, 4, 3, "C304") // single contract: claimed whole
	insertOccRoom(t, db, 5, 3, "C305") // two occupants: full
	insertOccTenant(t, db, 1, "female")
	insertOccTenant(t, db, 2, "male")
	insertOccTenant(t, db, 3, "male")
	insertOccTenant(t, db, 4, "female")
	insertOccTenant(t, db, 5, "female")
	insertOccContract(t, db, 1, 1, 1, 2, "double", nil)
	insertOccContract(t, db, 2, 1, 2, 3, "double", nil)
	insertOccContract(t, db, 3, 1, 3, 4, "single", nil)
	insertOccContract(t, db, 4, 1, 4, 5, "double", nil)
	insertOccContract(t, db, 5, 1, 5, 5, "double", nil)

	svc := newOccupancyService(db)
	rooms, err := svc.CandidateRooms(context.Background(), "female", 3, 1)
	if err != nil {
		t.Fatalf("candidate rooms: %v", err)
	}

	got := map[string]bool{}
	for _, room := range rooms {
		got[room.RoomName] = true
	}
	if len(got) != 2 || !got["C301"] || !got["C302"] {
		t.Fatalf("expected C301 and C302 only, got %v", got)
	}
}

func TestCandidateRoomsEmptyResultIsValid(t *testing.T) {
	db := setupOccupancyTestDB(t)
	insertOccCycle(t, db, 1)
	insertOccRoom(t, db, 1, 4, "D401")
	insertOccTenant(t, db, 1, "male")
	insertOccContract(t, db, 1, 1, 1, 1, "single", nil)

	svc := newOccupancyService(db)
	rooms, err := svc.CandidateRooms(context.Background(), "female", 4, 1)
	if err != nil {
		t.Fatalf("candidate rooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no candidates, got %d", len(rooms))
	}
}

func TestCandidateRoomsRejectsBadGender(t *testing.T) {
	db := setupOccupancyTestDB(t)

	svc := newOccupancyService(db)
	_, err := svc.CandidateRooms(context.Background(), "other", 1, 1)
	if !errors.Is(err, occupancydomain.ErrInvalidGender) {
		t.Fatalf("expected invalid gender, got %v", err)
	}
}

func TestRateForCount(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, occupancydomain.RateEmpty},
		{1, occupancydomain.RateHalf},
		{2, occupancydomain.RateFull},
		{3, occupancydomain.RateOverbooked},
		{7, occupancydomain.RateOverbooked},
	}
	for _, tc := range cases {
		if got := occupancydomain.RateForCount(tc.count); got != tc.want {
			t.Fatalf("count %d: expected %d, got %d", tc.count, tc.want, got)
		}
	}
}

func newOccupancyService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.Fixed{T: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func setupOccupancyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id BIGINT PRIMARY KEY,
			level_number INTEGER NOT NULL,
			room_name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS billing_cycles (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS occupancy_contracts (
			id BIGINT PRIMARY KEY,
			cycle_id BIGINT NOT NULL,
			tenant_id BIGINT NOT NULL,
			room_id BIGINT NOT NULL,
			agreed_price BIGINT NOT NULL DEFAULT 0,
			own_start_date DATE,
			own_end_date DATE,
			contract_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func insertOccTenant(t *testing.T, db *gorm.DB, id snowflake.ID, gender string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO tenants (id, name, gender) VALUES (?, ?, ?)`,
		id, fmt.Sprintf("Tenant %d", id), gender,
	).Error; err != nil {
		t.Fatalf("insert tenant: %v", err)
	}
}

func insertOccRoom(t *testing.T, db *gorm.DB, id snowflake.ID, level int, name string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO rooms (id, level_number, room_name) VALUES (?, ?, ?)`,
		id, level, name,
	).Error; err != nil {
		t.Fatalf("insert room: %v", err)
	}
}

func insertOccCycle(t *testing.T, db *gorm.DB, id snowflake.ID) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO billing_cycles (id, name, start_date, end_date)
		 VALUES (?, ?, '2024-08-03', '2024-12-08')`,
		id, fmt.Sprintf("Cycle %d", id),
	).Error; err != nil {
		t.Fatalf("insert cycle: %v", err)
	}
}

func insertOccContract(t *testing.T, db *gorm.DB, id, cycleID, tenantID, roomID snowflake.ID, kind string, ownEndDate *string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, contract_type, own_end_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, cycleID, tenantID, roomID, kind, ownEndDate,
	).Error; err != nil {
		t.Fatalf("insert contract: %v", err)
	}
}
