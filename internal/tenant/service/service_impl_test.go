package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTenantTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	stmts := []string{
		`CREATE TABLE tenants (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT,
			age INTEGER,
			course TEXT,
			own_contact TEXT,
			next_of_kin TEXT,
			kin_contact TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE rooms (
			id INTEGER PRIMARY KEY,
			room_name TEXT NOT NULL,
			level_number INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE occupancy_contracts (
			id INTEGER PRIMARY KEY,
			tenant_id INTEGER NOT NULL,
			cycle_id INTEGER NOT NULL,
			room_id INTEGER NOT NULL,
			agreed_price INTEGER NOT NULL,
			contract_type TEXT NOT NULL,
			demand_notice_date DATE,
			own_start_date DATE,
			own_end_date DATE,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE payments (
			id INTEGER PRIMARY KEY,
			contract_id INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func newTenantService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return &Service{db: db, log: zap.NewNop(), genID: node}
}

func TestCreateAndGetTenant(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)
	ctx := context.Background()

	contact := "0772123456"
	created, err := svc.Create(ctx, tenantdomain.CreateTenantRequest{
		Name:       "  Alice Okello ",
		Gender:     tenantdomain.GenderFemale,
		OwnContact: &contact,
	})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	if created.Name != "Alice Okello" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get tenant: %v", err)
	}
	if got.Name != "Alice Okello" || got.OwnContact == nil || *got.OwnContact != contact {
		t.Fatalf("unexpected tenant %+v", got)
	}
}

func TestCreateTenantValidation(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, tenantdomain.CreateTenantRequest{Name: "  ", Gender: tenantdomain.GenderMale})
	if !errors.Is(err, tenantdomain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	_, err = svc.Create(ctx, tenantdomain.CreateTenantRequest{Name: "Bob", Gender: "other"})
	if !errors.Is(err, tenantdomain.ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
}

func TestDeletedTenantIsInvisible(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, tenantdomain.CreateTenantRequest{Name: "Brian", Gender: tenantdomain.GenderMale})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	affected, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete tenant: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row deleted, got %d", affected)
	}

	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, tenantdomain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound after delete, got %v", err)
	}

	refs, err := svc.SearchByName(ctx, "Brian")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected deleted tenant hidden from search, got %v", refs)
	}

	// The row itself stays, only its status flips.
	var status record.Status
	if err := db.Raw(`SELECT status FROM tenants WHERE id = ?`, created.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != record.StatusDeleted {
		t.Fatalf("expected status deleted, got %q", status)
	}
}

func TestDeleteAndUpdateSkipAlreadyDeleted(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, tenantdomain.CreateTenantRequest{Name: "Cara", Gender: tenantdomain.GenderFemale})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete tenant: %v", err)
	}

	affected, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected second delete to touch nothing, got %d", affected)
	}

	name := "Renamed"
	affected, err = svc.Update(ctx, created.ID, tenantdomain.UpdateTenantRequest{Name: &name})
	if err != nil {
		t.Fatalf("update deleted tenant: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected update of deleted tenant to touch nothing, got %d", affected)
	}
}

func TestProfileFoldsContractsAndPayments(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, tenantdomain.CreateTenantRequest{Name: "Dora", Gender: tenantdomain.GenderFemale})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	if err := db.Exec(`INSERT INTO rooms (id, room_name, level_number) VALUES (1, 'A101', 1)`).Error; err != nil {
		t.Fatalf("insert room: %v", err)
	}
	if err := db.Exec(
		`INSERT INTO occupancy_contracts (id, tenant_id, cycle_id, room_id, agreed_price, contract_type)
		 VALUES (1, ?, 1, 1, 800, 'double'), (2, ?, 2, 1, 650, 'double')`,
		created.ID, created.ID,
	).Error; err != nil {
		t.Fatalf("insert contracts: %v", err)
	}
	if err := db.Exec(
		`INSERT INTO payments (id, contract_id, amount, date, status) VALUES
		 (1, 1, 300, '2024-09-01', 'active'),
		 (2, 1, 500, '2024-10-01', 'active'),
		 (3, 2, 650, '2025-02-01', 'deleted')`,
	).Error; err != nil {
		t.Fatalf("insert payments: %v", err)
	}

	profile, err := svc.Profile(ctx, created.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.Contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(profile.Contracts))
	}
	if len(profile.Contracts[0].Payments) != 2 {
		t.Fatalf("expected 2 payments on first contract, got %d", len(profile.Contracts[0].Payments))
	}
	if profile.Contracts[0].Payments[0].Amount != 300 || profile.Contracts[0].Payments[1].Amount != 500 {
		t.Fatalf("expected payments ordered by date, got %+v", profile.Contracts[0].Payments)
	}
	if len(profile.Contracts[1].Payments) != 0 {
		t.Fatalf("expected deleted payment excluded, got %+v", profile.Contracts[1].Payments)
	}
	if profile.Contracts[0].RoomName != "A101" {
		t.Fatalf("expected room name joined in, got %q", profile.Contracts[0].RoomName)
	}
}

func TestProfileUnknownTenant(t *testing.T) {
	db := setupTenantTestDB(t)
	svc := newTenantService(t, db)

	if _, err := svc.Profile(context.Background(), 999); !errors.Is(err, tenantdomain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}
