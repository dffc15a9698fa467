package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateContractRequest struct {
	CycleID          snowflake.ID `json:"cycle_id"`
	TenantID         snowflake.ID `json:"tenant_id"`
	RoomID           snowflake.ID `json:"room_id"`
	AgreedPrice      int64        `json:"agreed_price"`
	ContractType     ContractType `json:"contract_type"`
	DemandNoticeDate *string      `json:"demand_notice_date"`
	OwnStartDate     *string      `json:"own_start_date"`
	OwnEndDate       *string      `json:"own_end_date"`
}

type UpdateContractRequest struct {
	CycleID          *snowflake.ID `json:"cycle_id"`
	RoomID           *snowflake.ID `json:"room_id"`
	AgreedPrice      *int64        `json:"agreed_price"`
	ContractType     *ContractType `json:"contract_type"`
	DemandNoticeDate *string       `json:"demand_notice_date"`
	OwnStartDate     *string       `json:"own_start_date"`
	OwnEndDate       *string       `json:"own_end_date"`
}

// ContractWithRoom pairs a contract with its room name for display.
type ContractWithRoom struct {
	OccupancyContract
	RoomName string `json:"room_name"`
}

// Service exposes occupancy contract records.
type Service interface {
	Create(ctx context.Context, req CreateContractRequest) (*OccupancyContract, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateContractRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*OccupancyContract, error)
	// CycleBoundForTenant returns the tenant's non-rolling contract in
	// a cycle, the one a semester payment is made against.
	CycleBoundForTenant(ctx context.Context, tenantID, cycleID snowflake.ID) ([]ContractWithRoom, error)
	// RollingForTenant returns every rolling (monthly) contract the
	// tenant has held, with the room name.
	RollingForTenant(ctx context.Context, tenantID snowflake.ID) ([]ContractWithRoom, error)
}

var (
	ErrContractNotFound = errors.New("contract_not_found")
	ErrInvalidCycle     = errors.New("invalid_cycle")
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidRoom      = errors.New("invalid_room")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidType      = errors.New("invalid_contract_type")
	ErrInvalidDate      = errors.New("invalid_date")
)
