package service

import (
	"context"
	"errors"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/cache"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/config"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	dashboarddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/dashboard/domain"
	perioddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/period/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Periods perioddomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	periods perioddomain.Service
	cache   cache.Cache[snowflake.ID, dashboarddomain.Summary]
	ttl     time.Duration
}

func NewService(p Params) dashboarddomain.Service {
	var c cache.Cache[snowflake.ID, dashboarddomain.Summary]
	if p.Config.DashboardCacheTTL > 0 {
		c = cache.NewMemory[snowflake.ID, dashboarddomain.Summary]()
	} else {
		c = cache.Disabled[snowflake.ID, dashboarddomain.Summary]{}
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("dashboard.service"),
		clock:   p.Clock,
		periods: p.Periods,
		cache:   c,
		ttl:     p.Config.DashboardCacheTTL,
	}
}

// Summary computes the cycle figures inside one transaction so a
// payment landing mid-read cannot skew totals against each other.
// Results are cached per cycle for the configured TTL.
func (s *Service) Summary(ctx context.Context, cycleID snowflake.ID) (*dashboarddomain.Summary, error) {
	if cached, ok := s.cache.Get(cycleID); ok {
		return &cached, nil
	}

	today := s.clock.Today()
	out := dashboarddomain.Summary{CycleID: cycleID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cycle cycledomain.BillingCycle
		err := tx.Where("id = ? AND status = ?", cycleID, record.StatusActive).
			First(&cycle).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cycledomain.ErrCycleNotFound
		}
		if err != nil {
			return err
		}

		// Tenant and slot counts only see contracts still inside their
		// active window. Money totals deliberately do not, so history
		// stays on the books after a rolling contract ends.
		if err := tx.Raw(
			`SELECT COUNT(DISTINCT c.tenant_id)
			 FROM occupancy_contracts c
			 JOIN tenants t ON t.id = c.tenant_id AND t.status = ?
			 WHERE c.cycle_id = ? AND c.status = ?
			   AND `+contractdomain.ActiveWindowClause,
			record.StatusActive, cycleID, record.StatusActive, today,
		).Scan(&out.ActiveTenantCount).Error; err != nil {
			return err
		}

		var totalRooms int64
		if err := tx.Raw(
			`SELECT COUNT(*) FROM rooms WHERE status = ?`,
			record.StatusActive,
		).Scan(&totalRooms).Error; err != nil {
			return err
		}

		var occupied int64
		if err := tx.Raw(
			`SELECT COALESCE(SUM(CASE WHEN c.contract_type = ? THEN 2 ELSE 1 END), 0)
			 FROM occupancy_contracts c
			 JOIN rooms r ON r.id = c.room_id AND r.status = ?
			 WHERE c.cycle_id = ? AND c.status = ?
			   AND `+contractdomain.ActiveWindowClause,
			contractdomain.ContractTypeSingle, record.StatusActive,
			cycleID, record.StatusActive, today,
		).Scan(&occupied).Error; err != nil {
			return err
		}
		// Goes negative when rooms are overbooked; the anomaly must
		// show in the figure rather than be rounded away.
		out.FreeSlots = totalRooms*roomdomain.SlotsPerRoom - occupied

		if err := tx.Raw(
			`SELECT COALESCE(SUM(p.amount), 0)
			 FROM payments p
			 JOIN occupancy_contracts c ON c.id = p.contract_id AND c.status = ?
			 WHERE c.cycle_id = ? AND p.status = ?`,
			record.StatusActive, cycleID, record.StatusActive,
		).Scan(&out.TotalPayments).Error; err != nil {
			return err
		}

		// May go negative when tenants overpay.
		if err := tx.Raw(
			`SELECT COALESCE(SUM(c.agreed_price), 0)
			 FROM occupancy_contracts c
			 WHERE c.cycle_id = ? AND c.status = ?`,
			cycleID, record.StatusActive,
		).Scan(&out.TotalOutstanding).Error; err != nil {
			return err
		}
		out.TotalOutstanding -= out.TotalPayments

		if err := tx.Raw(
			`SELECT COALESCE(SUM(e.quantity * e.unit_amount), 0)
			 FROM expenses e
			 WHERE e.cycle_id = ? AND e.status = ?`,
			cycleID, record.StatusActive,
		).Scan(&out.TotalExpenses).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lapsed, err := s.periods.LapsedTenants(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	out.LapsedTenantCount = int64(len(lapsed))

	s.cache.Set(cycleID, out, s.ttl)
	return &out, nil
}
