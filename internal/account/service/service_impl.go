package service

import (
	"context"
	"errors"
	"strings"
	"time"

	accountdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/account/domain"
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

func NewService(p Params) accountdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req accountdomain.CreateAccountRequest) (*accountdomain.Account, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.Contains(username, " ") {
		return nil, accountdomain.ErrInvalidUsername
	}
	if len(req.Password) < 4 {
		return nil, accountdomain.ErrInvalidPassword
	}
	role := req.Role
	if role == "" {
		role = accountdomain.RoleCustodian
	}
	if !role.Valid() {
		return nil, accountdomain.ErrInvalidRole
	}

	now := time.Now().UTC()
	row := &accountdomain.Account{
		ID:        s.genID.Generate(),
		Username:  username,
		Password:  req.Password,
		Role:      role,
		Approved:  false,
		Status:    record.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req accountdomain.UpdateAccountRequest) (int64, error) {
	updates := map[string]any{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" || strings.Contains(username, " ") {
			return 0, accountdomain.ErrInvalidUsername
		}
		updates["username"] = username
	}
	if req.Password != nil {
		if len(*req.Password) < 4 {
			return 0, accountdomain.ErrInvalidPassword
		}
		updates["password"] = *req.Password
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return 0, accountdomain.ErrInvalidRole
		}
		updates["role"] = *req.Role
	}
	if req.Approved != nil {
		updates["approved"] = *req.Approved
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*accountdomain.Account, error) {
	var row accountdomain.Account
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountdomain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(ctx context.Context) ([]accountdomain.Account, error) {
	var rows []accountdomain.Account
	err := s.db.WithContext(ctx).
		Where("status = ?", record.StatusActive).
		Order("username").
		Find(&rows).Error
	return rows, err
}

func (s *Service) ListUnapproved(ctx context.Context) ([]accountdomain.Account, error) {
	var rows []accountdomain.Account
	err := s.db.WithContext(ctx).
		Where("approved = ? AND status = ?", false, record.StatusActive).
		Order("username").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Login(ctx context.Context, username, password string) (*accountdomain.Account, error) {
	var row accountdomain.Account
	err := s.db.WithContext(ctx).
		Where("username = ? AND password = ? AND approved = ? AND status = ?",
			strings.TrimSpace(username), password, true, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountdomain.ErrLoginFailed
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
