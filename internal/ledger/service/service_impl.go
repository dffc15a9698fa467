package service

import (
	"context"
	"errors"
	"sort"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	ledgerdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/ledger/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
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

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ledger.service"),
		clock: p.Clock,
	}
}

func (s *Service) OutstandingBalance(ctx context.Context, contractID snowflake.ID) (*ledgerdomain.Balance, error) {
	var contractRow contractdomain.OccupancyContract
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", contractID, record.StatusActive).
		First(&contractRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledgerdomain.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}

	var totalPaid int64
	err = s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM payments
		 WHERE contract_id = ? AND status = ?`,
		contractID,
		record.StatusActive,
	).Scan(&totalPaid).Error
	if err != nil {
		return nil, err
	}

	return &ledgerdomain.Balance{
		ContractID:  contractID,
		AgreedPrice: contractRow.AgreedPrice,
		TotalPaid:   totalPaid,
		Outstanding: contractRow.AgreedPrice - totalPaid,
	}, nil
}

// PaymentsWithRunningBalance accumulates each contract's payments in
// ascending date order and reports the balance left after each one,
// then presents the whole listing in descending date order. The two
// orders are intentionally opposite: the running figure reads like a
// statement while the newest payment stays on top.
func (s *Service) PaymentsWithRunningBalance(ctx context.Context, cycleID snowflake.ID) ([]ledgerdomain.PaymentRow, error) {
	var rows []ledgerdomain.PaymentRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT p.id AS payment_id, p.contract_id, p.date, p.amount,
		        t.id AS tenant_id, t.name AS tenant_name, t.own_contact AS contact,
		        r.room_name, cy.name AS cycle_name, c.agreed_price
		 FROM payments p
		 JOIN occupancy_contracts c ON c.id = p.contract_id AND c.status = ?
		 JOIN tenants t ON t.id = c.tenant_id AND t.status = ?
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 JOIN billing_cycles cy ON cy.id = c.cycle_id AND cy.status = ?
		 WHERE c.cycle_id = ? AND p.status = ?
		 ORDER BY p.date, p.id`,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Ascending accumulation per contract.
	running := map[snowflake.ID]int64{}
	for i := range rows {
		running[rows[i].ContractID] += rows[i].Amount
		rows[i].OwingAmount = rows[i].AgreedPrice - running[rows[i].ContractID]
	}

	// Descending presentation.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].PaymentID > rows[j].PaymentID
	})
	return rows, nil
}

func (s *Service) TenantsWithOwingBalance(ctx context.Context, cycleID snowflake.ID) ([]ledgerdomain.TenantBalance, error) {
	var rows []ledgerdomain.TenantBalance
	err := s.db.WithContext(ctx).Raw(
		`SELECT t.id AS tenant_id, t.name AS tenant_name, t.gender, r.room_name,
		        c.id AS contract_id, c.agreed_price, c.demand_notice_date,
		        c.agreed_price - COALESCE(SUM(p.amount), 0) AS owing_amount,
		        MAX(p.date) AS last_payment_date,
		        c.own_end_date IS NOT NULL AS pays_monthly
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 LEFT JOIN payments p ON p.contract_id = c.id AND p.status = ?
		 WHERE c.cycle_id = ? AND t.status = ?
		 GROUP BY t.id, t.name, t.gender, r.room_name, c.id, c.agreed_price, c.demand_notice_date, c.own_end_date
		 HAVING c.agreed_price - COALESCE(SUM(p.amount), 0) > 0
		 ORDER BY owing_amount DESC, t.name`,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) TenantsWithBalance(ctx context.Context, cycleID snowflake.ID) ([]ledgerdomain.TenantBalance, error) {
	var rows []ledgerdomain.TenantBalance
	err := s.db.WithContext(ctx).Raw(
		`SELECT t.id AS tenant_id, t.name AS tenant_name, t.gender, r.room_name,
		        c.id AS contract_id, c.agreed_price, c.demand_notice_date,
		        c.agreed_price - COALESCE(SUM(p.amount), 0) AS owing_amount,
		        MAX(p.date) AS last_payment_date,
		        c.own_end_date IS NOT NULL AS pays_monthly
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 LEFT JOIN payments p ON p.contract_id = c.id AND p.status = ?
		 WHERE c.cycle_id = ?
		   AND `+contractdomain.ActiveWindowClause+`
		   AND t.status = ?
		 GROUP BY t.id, t.name, t.gender, r.room_name, c.id, c.agreed_price, c.demand_notice_date, c.own_end_date
		 ORDER BY owing_amount DESC, t.name`,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		cycleID,
		s.clock.Today(),
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) TenantsOwingByRoom(ctx context.Context, roomID, cycleID snowflake.ID) ([]ledgerdomain.RoomTenantBalance, error) {
	var rows []ledgerdomain.RoomTenantBalance
	err := s.db.WithContext(ctx).Raw(
		`SELECT t.name AS tenant_name, t.gender,
		        c.agreed_price - COALESCE(SUM(p.amount), 0) AS owing_amount
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 LEFT JOIN payments p ON p.contract_id = c.id AND p.status = ?
		 WHERE c.room_id = ? AND c.cycle_id = ?
		   AND `+contractdomain.ActiveWindowClause+`
		   AND t.status = ?
		 GROUP BY t.id, t.name, t.gender, c.agreed_price
		 ORDER BY t.name`,
		record.StatusActive,
		record.StatusActive,
		roomID,
		cycleID,
		s.clock.Today(),
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}
