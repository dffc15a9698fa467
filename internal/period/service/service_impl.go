package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	perioddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/period/domain"
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

func NewService(p Params) perioddomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("period.service"),
		clock: p.Clock,
	}
}

// historyRow is one contract of one tenant together with its cycle and
// balance, the unit the lapse classification works on.
type historyRow struct {
	TenantID    snowflake.ID
	TenantName  string
	RoomName    string
	ContractID  snowflake.ID
	CycleID     snowflake.ID
	CycleName   string
	CycleStart  time.Time
	OwnEndDate  *time.Time
	AgreedPrice int64
	OwingAmount int64
}

func (s *Service) LapsedTenants(ctx context.Context, referenceCycleID snowflake.ID) ([]perioddomain.LapsedTenant, error) {
	refCycle, err := s.loadCycle(ctx, referenceCycleID)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	byTenant := map[snowflake.ID][]historyRow{}
	for _, row := range rows {
		byTenant[row.TenantID] = append(byTenant[row.TenantID], row)
	}

	today := s.clock.Today()
	out := []perioddomain.LapsedTenant{}
	for _, history := range byTenant {
		if lapsed, ok := classify(history, referenceCycleID, refCycle.StartDate, today); ok {
			out = append(out, lapsed)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].OwingAmount != out[j].OwingAmount {
			return out[i].OwingAmount > out[j].OwingAmount
		}
		return out[i].TenantName < out[j].TenantName
	})
	return out, nil
}

// classify applies the two lapse rules to one tenant's history: (a) a
// contract in an earlier-starting cycle and none in the reference
// cycle, or (b) a rolling contract in the reference cycle whose end
// date has passed.
func classify(history []historyRow, refCycleID snowflake.ID, refStart, today time.Time) (perioddomain.LapsedTenant, bool) {
	var inRef []historyRow
	for _, row := range history {
		if row.CycleID == refCycleID {
			inRef = append(inRef, row)
		}
	}

	if len(inRef) == 0 {
		// Case (a): pick the most recent earlier contract as the one
		// the tenant lapsed from.
		var last *historyRow
		for i := range history {
			row := &history[i]
			if !row.CycleStart.Before(refStart) {
				continue
			}
			if last == nil || row.CycleStart.After(last.CycleStart) ||
				(row.CycleStart.Equal(last.CycleStart) && row.ContractID > last.ContractID) {
				last = row
			}
		}
		if last == nil {
			return perioddomain.LapsedTenant{}, false
		}
		return annotate(*last), true
	}

	// Case (b): a rolling contract in the reference cycle that ended.
	var expired *historyRow
	for i := range inRef {
		row := &inRef[i]
		if row.OwnEndDate == nil || !row.OwnEndDate.Before(today) {
			continue
		}
		if expired == nil || row.OwnEndDate.After(*expired.OwnEndDate) {
			expired = row
		}
	}
	if expired == nil {
		return perioddomain.LapsedTenant{}, false
	}
	return annotate(*expired), true
}

func annotate(row historyRow) perioddomain.LapsedTenant {
	return perioddomain.LapsedTenant{
		TenantID:      row.TenantID,
		TenantName:    row.TenantName,
		RoomName:      row.RoomName,
		LastSeenCycle: row.CycleName,
		OwingAmount:   row.OwingAmount,
		PaysMonthly:   row.OwnEndDate != nil,
		OwnEndDate:    row.OwnEndDate,
	}
}

// Rollover is the manager's only mutation: one bulk update moving
// still-running rolling contracts into the target cycle. Re-running it
// with the same arguments reassigns already-moved rows to themselves,
// which is a no-op.
func (s *Service) Rollover(ctx context.Context, targetCycleID snowflake.ID, asOf time.Time) (*perioddomain.RolloverResult, error) {
	if _, err := s.loadCycle(ctx, targetCycleID); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Exec(
		`UPDATE occupancy_contracts
		 SET cycle_id = ?, updated_at = ?
		 WHERE own_end_date IS NOT NULL AND own_end_date >= ? AND status = ?`,
		targetCycleID,
		s.clock.Now(),
		asOf,
		record.StatusActive,
	)
	if res.Error != nil {
		return nil, res.Error
	}

	s.log.Info("rolled monthly contracts forward",
		zap.Int64("target_cycle_id", int64(targetCycleID)),
		zap.Time("as_of", asOf),
		zap.Int64("moved", res.RowsAffected),
	)
	return &perioddomain.RolloverResult{
		TargetCycleID: targetCycleID,
		AsOf:          asOf,
		MovedCount:    res.RowsAffected,
	}, nil
}

func (s *Service) TenantsInXNotY(ctx context.Context, cycleX, cycleY snowflake.ID) ([]tenantdomain.Tenant, error) {
	var rows []tenantdomain.Tenant
	err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT t.*
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 WHERE c.cycle_id = ?
		   AND t.status = ?
		   AND t.id NOT IN (
		     SELECT c2.tenant_id
		     FROM occupancy_contracts c2
		     WHERE c2.cycle_id = ? AND c2.status = ?
		   )
		 ORDER BY t.name`,
		record.StatusActive,
		cycleX,
		record.StatusActive,
		cycleY,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) loadCycle(ctx context.Context, id snowflake.ID) (*cycledomain.BillingCycle, error) {
	var row cycledomain.BillingCycle
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, perioddomain.ErrCycleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) loadHistory(ctx context.Context) ([]historyRow, error) {
	var rows []historyRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT t.id AS tenant_id, t.name AS tenant_name, r.room_name,
		        c.id AS contract_id, c.cycle_id, cy.name AS cycle_name,
		        cy.start_date AS cycle_start, c.own_end_date, c.agreed_price,
		        c.agreed_price - COALESCE(SUM(p.amount), 0) AS owing_amount
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 JOIN billing_cycles cy ON cy.id = c.cycle_id AND cy.status = ?
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 LEFT JOIN payments p ON p.contract_id = c.id AND p.status = ?
		 WHERE t.status = ?
		 GROUP BY t.id, t.name, r.room_name, c.id, c.cycle_id, cy.name, cy.start_date, c.own_end_date, c.agreed_price`,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}
