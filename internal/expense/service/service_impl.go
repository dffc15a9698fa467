package service

import (
	"context"
	"errors"
	"strings"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	expensedomain "github.com/Ed-Isingoma/hostelmgrserv/internal/expense/domain"
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

func NewService(p Params) expensedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req expensedomain.CreateExpenseRequest) (*expensedomain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, expensedomain.ErrInvalidDescription
	}
	if req.Quantity <= 0 {
		return nil, expensedomain.ErrInvalidQuantity
	}
	if req.UnitAmount <= 0 {
		return nil, expensedomain.ErrInvalidAmount
	}
	date, err := cycledomain.ParseDate(req.Date)
	if err != nil {
		return nil, expensedomain.ErrInvalidDate
	}

	now := time.Now().UTC()
	row := &expensedomain.Expense{
		ID:          s.genID.Generate(),
		Description: description,
		Quantity:    req.Quantity,
		UnitAmount:  req.UnitAmount,
		CycleID:     req.CycleID,
		RecordedBy:  req.RecordedBy,
		Date:        date,
		Status:      record.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req expensedomain.UpdateExpenseRequest) (int64, error) {
	updates := map[string]any{}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return 0, expensedomain.ErrInvalidDescription
		}
		updates["description"] = description
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return 0, expensedomain.ErrInvalidQuantity
		}
		updates["quantity"] = *req.Quantity
	}
	if req.UnitAmount != nil {
		if *req.UnitAmount <= 0 {
			return 0, expensedomain.ErrInvalidAmount
		}
		updates["unit_amount"] = *req.UnitAmount
	}
	if req.Date != nil {
		date, err := cycledomain.ParseDate(*req.Date)
		if err != nil {
			return 0, expensedomain.ErrInvalidDate
		}
		updates["date"] = date
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&expensedomain.Expense{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&expensedomain.Expense{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*expensedomain.Expense, error) {
	var row expensedomain.Expense
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, expensedomain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]expensedomain.ExpenseWithOperator, error) {
	var rows []expensedomain.ExpenseWithOperator
	err := s.db.WithContext(ctx).Raw(
		`SELECT e.*, a.username AS operator_name
		 FROM expenses e
		 JOIN accounts a ON a.id = e.recorded_by AND a.status = ?
		 WHERE e.cycle_id = ? AND e.status = ?
		 ORDER BY e.date DESC`,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}

func (s *Service) ListByDateRange(ctx context.Context, from time.Time, to *time.Time) ([]expensedomain.ExpenseWithOperator, error) {
	query := `SELECT e.*, a.username AS operator_name
		 FROM expenses e
		 JOIN accounts a ON a.id = e.recorded_by AND a.status = ?
		 WHERE e.date >= ? AND e.status = ?`
	args := []any{record.StatusActive, from, record.StatusActive}
	if to != nil {
		query += ` AND e.date <= ?`
		args = append(args, *to)
	}
	query += ` ORDER BY e.date DESC`

	var rows []expensedomain.ExpenseWithOperator
	err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}
