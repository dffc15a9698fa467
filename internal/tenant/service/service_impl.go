package service

import (
	"context"
	"errors"
	"strings"
	"time"

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
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) tenantdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req tenantdomain.CreateTenantRequest) (*tenantdomain.Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}
	if !req.Gender.Valid() {
		return nil, tenantdomain.ErrInvalidGender
	}

	now := time.Now().UTC()
	row := &tenantdomain.Tenant{
		ID:         s.genID.Generate(),
		Name:       name,
		Gender:     req.Gender,
		Age:        req.Age,
		Course:     req.Course,
		OwnContact: req.OwnContact,
		NextOfKin:  req.NextOfKin,
		KinContact: req.KinContact,
		Status:     record.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req tenantdomain.UpdateTenantRequest) (int64, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return 0, tenantdomain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.Gender != nil {
		if !req.Gender.Valid() {
			return 0, tenantdomain.ErrInvalidGender
		}
		updates["gender"] = *req.Gender
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Course != nil {
		updates["course"] = *req.Course
	}
	if req.OwnContact != nil {
		updates["own_contact"] = *req.OwnContact
	}
	if req.NextOfKin != nil {
		updates["next_of_kin"] = *req.NextOfKin
	}
	if req.KinContact != nil {
		updates["kin_contact"] = *req.KinContact
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&tenantdomain.Tenant{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&tenantdomain.Tenant{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*tenantdomain.Tenant, error) {
	var row tenantdomain.Tenant
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tenantdomain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type profileRow struct {
	ContractID       snowflake.ID
	CycleID          snowflake.ID
	RoomID           snowflake.ID
	RoomName         string
	LevelNumber      int
	AgreedPrice      int64
	ContractType     string
	DemandNoticeDate *time.Time
	OwnStartDate     *time.Time
	OwnEndDate       *time.Time
	PaymentID        *snowflake.ID
	Amount           *int64
	Date             *time.Time
}

// Profile loads the tenant plus every contract and payment on file,
// folding the flat join back into a nested shape.
func (s *Service) Profile(ctx context.Context, id snowflake.ID) (*tenantdomain.Profile, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var rows []profileRow
	err = s.db.WithContext(ctx).Raw(
		`SELECT c.id AS contract_id, c.cycle_id, c.room_id, r.room_name, r.level_number,
		        c.agreed_price, c.contract_type, c.demand_notice_date, c.own_start_date, c.own_end_date,
		        p.id AS payment_id, p.amount, p.date
		 FROM occupancy_contracts c
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 LEFT JOIN payments p ON p.contract_id = c.id AND p.status = ?
		 WHERE c.tenant_id = ? AND c.status = ?
		 ORDER BY c.id, p.date, p.id`,
		record.StatusActive,
		record.StatusActive,
		id,
		record.StatusActive,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	profile := &tenantdomain.Profile{Tenant: *tenant}
	index := map[snowflake.ID]int{}
	for _, row := range rows {
		pos, ok := index[row.ContractID]
		if !ok {
			profile.Contracts = append(profile.Contracts, tenantdomain.ContractHistory{
				ContractID:       row.ContractID,
				CycleID:          row.CycleID,
				RoomID:           row.RoomID,
				RoomName:         row.RoomName,
				LevelNumber:      row.LevelNumber,
				AgreedPrice:      row.AgreedPrice,
				ContractType:     row.ContractType,
				DemandNoticeDate: formatDate(row.DemandNoticeDate),
				OwnStartDate:     formatDate(row.OwnStartDate),
				OwnEndDate:       formatDate(row.OwnEndDate),
				Payments:         []tenantdomain.PaymentHistory{},
			})
			pos = len(profile.Contracts) - 1
			index[row.ContractID] = pos
		}
		if row.PaymentID != nil {
			profile.Contracts[pos].Payments = append(profile.Contracts[pos].Payments, tenantdomain.PaymentHistory{
				PaymentID: *row.PaymentID,
				Amount:    *row.Amount,
				Date:      row.Date.Format("2006-01-02"),
			})
		}
	}
	return profile, nil
}

func (s *Service) ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]tenantdomain.Tenant, error) {
	var rows []tenantdomain.Tenant
	err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT t.*
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 WHERE c.cycle_id = ? AND t.status = ?
		 ORDER BY t.name`,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) ListRefsByCycle(ctx context.Context, cycleID snowflake.ID) ([]tenantdomain.TenantRef, error) {
	var rows []tenantdomain.TenantRef
	err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT t.id, t.name
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 WHERE c.cycle_id = ? AND t.status = ?
		 ORDER BY t.name`,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) ListByLevel(ctx context.Context, level int, cycleID snowflake.ID) ([]tenantdomain.Tenant, error) {
	var rows []tenantdomain.Tenant
	err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT t.*
		 FROM tenants t
		 JOIN occupancy_contracts c ON c.tenant_id = t.id AND c.status = ?
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 WHERE c.cycle_id = ? AND r.level_number = ? AND t.status = ?
		 ORDER BY t.name`,
		record.StatusActive,
		record.StatusActive,
		cycleID,
		level,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) SearchByName(ctx context.Context, namePart string) ([]tenantdomain.TenantRef, error) {
	like := "%" + strings.TrimSpace(namePart) + "%"
	var rows []tenantdomain.TenantRef
	err := s.db.WithContext(ctx).Raw(
		`SELECT t.id, t.name
		 FROM tenants t
		 WHERE t.name LIKE ? AND t.status = ?
		 ORDER BY t.name`,
		like,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format("2006-01-02")
	return &formatted
}
