package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRoomRequest struct {
	LevelNumber int    `json:"level_number"`
	RoomName    string `json:"room_name"`
}

type UpdateRoomRequest struct {
	LevelNumber *int    `json:"level_number"`
	RoomName    *string `json:"room_name"`
}

// RoomRef is the id/name pair used by pickers and search.
type RoomRef struct {
	ID       snowflake.ID `json:"room_id"`
	RoomName string       `json:"room_name"`
}

// Service exposes room records and lookups.
type Service interface {
	Create(ctx context.Context, req CreateRoomRequest) (*Room, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRoomRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	Levels(ctx context.Context) ([]int, error)
	SearchByName(ctx context.Context, namePart string) ([]RoomRef, error)
}

var (
	ErrRoomNotFound = errors.New("room_not_found")
	ErrInvalidLevel = errors.New("invalid_level")
	ErrInvalidRoom  = errors.New("invalid_room_name")
)
