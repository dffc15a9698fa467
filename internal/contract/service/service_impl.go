package service

import (
	"context"
	"errors"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
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
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) contractdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("contract.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req contractdomain.CreateContractRequest) (*contractdomain.OccupancyContract, error) {
	if req.CycleID == 0 {
		return nil, contractdomain.ErrInvalidCycle
	}
	if req.TenantID == 0 {
		return nil, contractdomain.ErrInvalidTenant
	}
	if req.RoomID == 0 {
		return nil, contractdomain.ErrInvalidRoom
	}
	if req.AgreedPrice <= 0 {
		return nil, contractdomain.ErrInvalidPrice
	}
	if !req.ContractType.Valid() {
		return nil, contractdomain.ErrInvalidType
	}
	demandNotice, err := parseOptionalDate(req.DemandNoticeDate)
	if err != nil {
		return nil, err
	}
	ownStart, err := parseOptionalDate(req.OwnStartDate)
	if err != nil {
		return nil, err
	}
	ownEnd, err := parseOptionalDate(req.OwnEndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &contractdomain.OccupancyContract{
		ID:               s.genID.Generate(),
		CycleID:          req.CycleID,
		TenantID:         req.TenantID,
		RoomID:           req.RoomID,
		AgreedPrice:      req.AgreedPrice,
		ContractType:     req.ContractType,
		DemandNoticeDate: demandNotice,
		OwnStartDate:     ownStart,
		OwnEndDate:       ownEnd,
		Status:           record.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req contractdomain.UpdateContractRequest) (int64, error) {
	updates := map[string]any{}
	if req.CycleID != nil {
		if *req.CycleID == 0 {
			return 0, contractdomain.ErrInvalidCycle
		}
		updates["cycle_id"] = *req.CycleID
	}
	if req.RoomID != nil {
		if *req.RoomID == 0 {
			return 0, contractdomain.ErrInvalidRoom
		}
		updates["room_id"] = *req.RoomID
	}
	if req.AgreedPrice != nil {
		if *req.AgreedPrice <= 0 {
			return 0, contractdomain.ErrInvalidPrice
		}
		updates["agreed_price"] = *req.AgreedPrice
	}
	if req.ContractType != nil {
		if !req.ContractType.Valid() {
			return 0, contractdomain.ErrInvalidType
		}
		updates["contract_type"] = *req.ContractType
	}
	if req.DemandNoticeDate != nil {
		parsed, err := parseOptionalDate(req.DemandNoticeDate)
		if err != nil {
			return 0, err
		}
		updates["demand_notice_date"] = parsed
	}
	if req.OwnStartDate != nil {
		parsed, err := parseOptionalDate(req.OwnStartDate)
		if err != nil {
			return 0, err
		}
		updates["own_start_date"] = parsed
	}
	if req.OwnEndDate != nil {
		parsed, err := parseOptionalDate(req.OwnEndDate)
		if err != nil {
			return 0, err
		}
		updates["own_end_date"] = parsed
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&contractdomain.OccupancyContract{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&contractdomain.OccupancyContract{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*contractdomain.OccupancyContract, error) {
	var row contractdomain.OccupancyContract
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contractdomain.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) CycleBoundForTenant(ctx context.Context, tenantID, cycleID snowflake.ID) ([]contractdomain.ContractWithRoom, error) {
	var rows []contractdomain.ContractWithRoom
	err := s.db.WithContext(ctx).Raw(
		`SELECT c.*, r.room_name
		 FROM occupancy_contracts c
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 WHERE c.tenant_id = ? AND c.cycle_id = ?
		   AND c.own_end_date IS NULL
		   AND c.status = ?`,
		record.StatusActive,
		tenantID,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) RollingForTenant(ctx context.Context, tenantID snowflake.ID) ([]contractdomain.ContractWithRoom, error) {
	var rows []contractdomain.ContractWithRoom
	err := s.db.WithContext(ctx).Raw(
		`SELECT c.*, r.room_name
		 FROM occupancy_contracts c
		 JOIN rooms r ON r.id = c.room_id AND r.status = ?
		 WHERE c.tenant_id = ?
		   AND c.own_start_date IS NOT NULL
		   AND c.own_end_date IS NOT NULL
		   AND c.status = ?
		 ORDER BY c.own_start_date`,
		record.StatusActive,
		tenantID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := cycledomain.ParseDate(*value)
	if err != nil {
		return nil, contractdomain.ErrInvalidDate
	}
	return &parsed, nil
}
