package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/cache"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	dashboarddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/dashboard/domain"
	periodservice "github.com/Ed-Isingoma/hostelmgrserv/internal/period/service"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSummaryTotals(t *testing.T) {
	db := setupDashboardTestDB(t)
	execAll(t, db,
		`INSERT INTO billing_cycles (id, name, start_date, end_date) VALUES (1, 'Semester 1', '2024-08-03', '2024-12-08')`,
		`INSERT INTO rooms (id, level_number, room_name) VALUES (1, 1, 'A101'), (2, 1, 'A102'), (3, 2, 'B201')`,
		`INSERT INTO tenants (id, name, gender) VALUES (1, 'Alice', 'female'), (2, 'Bob', 'male'), (3, 'Carol', 'female')`,
		// Alice holds a single (claims both slots of room 1), Bob and
		// Carol share room 2 on doubles.
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, agreed_price, contract_type)
		 VALUES (1, 1, 1, 1, 1300, 'single'), (2, 1, 2, 2, 650, 'double'), (3, 1, 3, 2, 650, 'double')`,
		`INSERT INTO payments (id, contract_id, date, amount)
		 VALUES (1, 1, '2024-08-10', 1000), (2, 2, '2024-08-11', 650)`,
		`INSERT INTO expenses (id, description, quantity, unit_amount, cycle_id, recorded_by, date)
		 VALUES (1, 'bulbs', 10, 20, 1, 1, '2024-08-15'), (2, 'paint', 2, 300, 1, 1, '2024-08-16')`,
	)

	svc := newDashboardService(db)
	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.ActiveTenantCount != 3 {
		t.Fatalf("expected 3 active tenants, got %d", summary.ActiveTenantCount)
	}
	// 3 rooms x 2 slots = 6; the single takes 2, the doubles 1 each.
	if summary.FreeSlots != 2 {
		t.Fatalf("expected 2 free slots, got %d", summary.FreeSlots)
	}
	if summary.TotalPayments != 1650 {
		t.Fatalf("expected 1650 payments, got %d", summary.TotalPayments)
	}
	// 1300+650+650 agreed minus 1650 paid.
	if summary.TotalOutstanding != 950 {
		t.Fatalf("expected 950 outstanding, got %d", summary.TotalOutstanding)
	}
	if summary.TotalExpenses != 800 {
		t.Fatalf("expected 800 expenses, got %d", summary.TotalExpenses)
	}
}

func TestSummaryExcludesDeletedRowsEverywhere(t *testing.T) {
	db := setupDashboardTestDB(t)
	execAll(t, db,
		`INSERT INTO billing_cycles (id, name, start_date, end_date) VALUES (1, 'Semester 1', '2024-08-03', '2024-12-08')`,
		`INSERT INTO rooms (id, level_number, room_name, status) VALUES (1, 1, 'A101', 'active'), (2, 1, 'A102', 'deleted')`,
		`INSERT INTO tenants (id, name, gender, status) VALUES (1, 'Alice', 'female', 'active'), (2, 'Bob', 'male', 'deleted')`,
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, agreed_price, contract_type, status)
		 VALUES (1, 1, 1, 1, 800, 'double', 'active'), (2, 1, 2, 1, 800, 'double', 'deleted')`,
		`INSERT INTO payments (id, contract_id, date, amount, status)
		 VALUES (1, 1, '2024-08-10', 300, 'active'), (2, 1, '2024-08-11', 300, 'deleted')`,
		`INSERT INTO expenses (id, description, quantity, unit_amount, cycle_id, recorded_by, date, status)
		 VALUES (1, 'bulbs', 1, 100, 1, 1, '2024-08-15', 'active'), (2, 'paint', 1, 500, 1, 1, '2024-08-16', 'deleted')`,
	)

	svc := newDashboardService(db)
	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.ActiveTenantCount != 1 {
		t.Fatalf("expected 1 active tenant, got %d", summary.ActiveTenantCount)
	}
	// 1 live room x 2 slots minus 1 live double contract.
	if summary.FreeSlots != 1 {
		t.Fatalf("expected 1 free slot, got %d", summary.FreeSlots)
	}
	if summary.TotalPayments != 300 {
		t.Fatalf("expected 300 payments, got %d", summary.TotalPayments)
	}
	if summary.TotalOutstanding != 500 {
		t.Fatalf("expected 500 outstanding, got %d", summary.TotalOutstanding)
	}
	if summary.TotalExpenses != 100 {
		t.Fatalf("expected 100 expenses, got %d", summary.TotalExpenses)
	}
}

func TestSummaryOutstandingMayGoNegative(t *testing.T) {
	db := setupDashboardTestDB(t)
	execAll(t, db,
		`INSERT INTO billing_cycles (id, name, start_date, end_date) VALUES (1, 'Semester 1', '2024-08-03', '2024-12-08')`,
		`INSERT INTO rooms (id, level_number, room_name) VALUES (1, 1, 'A101')`,
		`INSERT INTO tenants (id, name, gender) VALUES (1, 'Alice', 'female')`,
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, agreed_price, contract_type)
		 VALUES (1, 1, 1, 1, 500, 'double')`,
		`INSERT INTO payments (id, contract_id, date, amount) VALUES (1, 1, '2024-08-10', 700)`,
	)

	svc := newDashboardService(db)
	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOutstanding != -200 {
		t.Fatalf("expected -200 outstanding, got %d", summary.TotalOutstanding)
	}
}

func TestSummaryFreeSlotsGoNegativeWhenOverbooked(t *testing.T) {
	db := setupDashboardTestDB(t)
	execAll(t, db,
		`INSERT INTO billing_cycles (id, name, start_date, end_date) VALUES (1, 'Semester 1', '2024-08-03', '2024-12-08')`,
		`INSERT INTO rooms (id, level_number, room_name) VALUES (1, 1, 'A101')`,
		`INSERT INTO tenants (id, name, gender) VALUES (1, 'Alice', 'female'), (2, 'Bob', 'male'), (3, 'Carol', 'female')`,
		// Three singles crammed into one room claim 6 slots against a
		// capacity of 2.
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, agreed_price, contract_type)
		 VALUES (1, 1, 1, 1, 1300, 'single'), (2, 1, 2, 1, 1300, 'single'), (3, 1, 3, 1, 1300, 'single')`,
	)

	svc := newDashboardService(db)
	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.FreeSlots != -4 {
		t.Fatalf("expected -4 free slots, got %d", summary.FreeSlots)
	}
}

func TestSummaryUnknownCycle(t *testing.T) {
	db := setupDashboardTestDB(t)

	svc := newDashboardService(db)
	_, err := svc.Summary(context.Background(), 9)
	if !errors.Is(err, cycledomain.ErrCycleNotFound) {
		t.Fatalf("expected cycle not found, got %v", err)
	}
}

func TestSummaryServesFromCacheWithinTTL(t *testing.T) {
	db := setupDashboardTestDB(t)
	execAll(t, db,
		`INSERT INTO billing_cycles (id, name, start_date, end_date) VALUES (1, 'Semester 1', '2024-08-03', '2024-12-08')`,
	)

	svc := newDashboardService(db)
	first, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	// A payment landing after the first read is invisible until the
	// cache entry expires.
	execAll(t, db,
		`INSERT INTO rooms (id, level_number, room_name) VALUES (1, 1, 'A101')`,
		`INSERT INTO tenants (id, name, gender) VALUES (1, 'Alice', 'female')`,
		`INSERT INTO occupancy_contracts (id, cycle_id, tenant_id, room_id, agreed_price, contract_type)
		 VALUES (1, 1, 1, 1, 800, 'double')`,
	)
	second, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if second.ActiveTenantCount != first.ActiveTenantCount {
		t.Fatalf("expected cached summary, got a fresh read")
	}
}

func newDashboardService(db *gorm.DB) *Service {
	fixed := clock.Fixed{T: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)}
	periods := periodservice.NewService(periodservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: fixed,
	})
	return &Service{
		db:      db,
		log:     zap.NewNop(),
		clock:   fixed,
		periods: periods,
		cache:   cache.NewMemory[snowflake.ID, dashboarddomain.Summary](),
		ttl:     time.Minute,
	}
}

func execAll(t *testing.T, db *gorm.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func setupDashboardTestDB(t *testing.T) *gorm.DB {
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
			agreed_price BIGINT NOT NULL,
			own_start_date DATE,
			own_end_date DATE,
			contract_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT PRIMARY KEY,
			contract_id BIGINT NOT NULL,
			date DATE NOT NULL,
			amount BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGINT PRIMARY KEY,
			description TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			unit_amount BIGINT NOT NULL,
			cycle_id BIGINT NOT NULL,
			recorded_by BIGINT NOT NULL,
			date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
