package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
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

func NewService(p Params) roomdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("room.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req roomdomain.CreateRoomRequest) (*roomdomain.Room, error) {
	if req.LevelNumber <= 0 {
		return nil, roomdomain.ErrInvalidLevel
	}
	name := strings.TrimSpace(req.RoomName)
	if name == "" {
		return nil, roomdomain.ErrInvalidRoom
	}

	now := time.Now().UTC()
	row := &roomdomain.Room{
		ID:          s.genID.Generate(),
		LevelNumber: req.LevelNumber,
		RoomName:    name,
		Status:      record.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req roomdomain.UpdateRoomRequest) (int64, error) {
	updates := map[string]any{}
	if req.LevelNumber != nil {
		if *req.LevelNumber <= 0 {
			return 0, roomdomain.ErrInvalidLevel
		}
		updates["level_number"] = *req.LevelNumber
	}
	if req.RoomName != nil {
		name := strings.TrimSpace(*req.RoomName)
		if name == "" {
			return 0, roomdomain.ErrInvalidRoom
		}
		updates["room_name"] = name
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&roomdomain.Room{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&roomdomain.Room{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*roomdomain.Room, error) {
	var row roomdomain.Room
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, roomdomain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(ctx context.Context) ([]roomdomain.Room, error) {
	var rows []roomdomain.Room
	err := s.db.WithContext(ctx).
		Where("status = ?", record.StatusActive).
		Order("level_number, room_name").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Levels(ctx context.Context) ([]int, error) {
	var levels []int
	err := s.db.WithContext(ctx).Raw(
		`SELECT DISTINCT level_number FROM rooms WHERE status = ? ORDER BY level_number`,
		record.StatusActive,
	).Scan(&levels).Error
	return levels, err
}

func (s *Service) SearchByName(ctx context.Context, namePart string) ([]roomdomain.RoomRef, error) {
	like := "%" + strings.TrimSpace(namePart) + "%"
	var rows []roomdomain.RoomRef
	err := s.db.WithContext(ctx).Raw(
		`SELECT r.id, r.room_name
		 FROM rooms r
		 WHERE r.room_name LIKE ? AND r.status = ?
		 ORDER BY r.room_name`,
		like,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}
