package service

import (
	"context"
	"errors"
	"strings"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
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

func NewService(p Params) cycledomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("billingcycle.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req cycledomain.CreateCycleRequest) (*cycledomain.BillingCycle, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, cycledomain.ErrInvalidName
	}
	start, err := cycledomain.ParseDate(req.StartDate)
	if err != nil {
		return nil, cycledomain.ErrInvalidDates
	}
	end, err := cycledomain.ParseDate(req.EndDate)
	if err != nil {
		return nil, cycledomain.ErrInvalidDates
	}
	if end.Before(start) {
		return nil, cycledomain.ErrInvalidDates
	}

	now := time.Now().UTC()
	row := &cycledomain.BillingCycle{
		ID:         s.genID.Generate(),
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		CostSingle: req.CostSingle,
		CostDouble: req.CostDouble,
		Status:     record.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req cycledomain.UpdateCycleRequest) (int64, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return 0, cycledomain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.StartDate != nil {
		start, err := cycledomain.ParseDate(*req.StartDate)
		if err != nil {
			return 0, cycledomain.ErrInvalidDates
		}
		updates["start_date"] = start
	}
	if req.EndDate != nil {
		end, err := cycledomain.ParseDate(*req.EndDate)
		if err != nil {
			return 0, cycledomain.ErrInvalidDates
		}
		updates["end_date"] = end
	}
	if req.CostSingle != nil {
		updates["cost_single"] = *req.CostSingle
	}
	if req.CostDouble != nil {
		updates["cost_double"] = *req.CostDouble
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&cycledomain.BillingCycle{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&cycledomain.BillingCycle{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*cycledomain.BillingCycle, error) {
	var row cycledomain.BillingCycle
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cycledomain.ErrCycleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(ctx context.Context) ([]cycledomain.BillingCycle, error) {
	var rows []cycledomain.BillingCycle
	err := s.db.WithContext(ctx).
		Where("status = ?", record.StatusActive).
		Order("start_date").
		Find(&rows).Error
	return rows, err
}
