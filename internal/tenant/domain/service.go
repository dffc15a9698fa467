package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// CreateTenantRequest carries the fields accepted at tenant creation.
type CreateTenantRequest struct {
	Name       string  `json:"name"`
	Gender     Gender  `json:"gender"`
	Age        *int    `json:"age"`
	Course     *string `json:"course"`
	OwnContact *string `json:"own_contact"`
	NextOfKin  *string `json:"next_of_kin"`
	KinContact *string `json:"kin_contact"`
}

// UpdateTenantRequest is a partial update; nil fields are left alone.
type UpdateTenantRequest struct {
	Name       *string `json:"name"`
	Gender     *Gender `json:"gender"`
	Age        *int    `json:"age"`
	Course     *string `json:"course"`
	OwnContact *string `json:"own_contact"`
	NextOfKin  *string `json:"next_of_kin"`
	KinContact *string `json:"kin_contact"`
}

// TenantRef is the id/name pair used by pickers and search.
type TenantRef struct {
	ID   snowflake.ID `json:"tenant_id"`
	Name string       `json:"name"`
}

// ContractHistory is one contract inside a full tenant profile,
// together with its room and payment history.
type ContractHistory struct {
	ContractID       snowflake.ID     `json:"contract_id"`
	CycleID          snowflake.ID     `json:"cycle_id"`
	RoomID           snowflake.ID     `json:"room_id"`
	RoomName         string           `json:"room_name"`
	LevelNumber      int              `json:"level_number"`
	AgreedPrice      int64            `json:"agreed_price"`
	ContractType     string           `json:"contract_type"`
	DemandNoticeDate *string          `json:"demand_notice_date,omitempty"`
	OwnStartDate     *string          `json:"own_start_date,omitempty"`
	OwnEndDate       *string          `json:"own_end_date,omitempty"`
	Payments         []PaymentHistory `json:"payments"`
}

// PaymentHistory is one payment row inside a profile.
type PaymentHistory struct {
	PaymentID snowflake.ID `json:"payment_id"`
	Amount    int64        `json:"amount"`
	Date      string       `json:"date"`
}

// Profile aggregates a tenant with every contract and payment on file.
type Profile struct {
	Tenant
	Contracts []ContractHistory `json:"contracts"`
}

// Service exposes tenant records and lookups.
type Service interface {
	Create(ctx context.Context, req CreateTenantRequest) (*Tenant, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateTenantRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*Tenant, error)
	Profile(ctx context.Context, id snowflake.ID) (*Profile, error)
	ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]Tenant, error)
	ListRefsByCycle(ctx context.Context, cycleID snowflake.ID) ([]TenantRef, error)
	ListByLevel(ctx context.Context, level int, cycleID snowflake.ID) ([]Tenant, error)
	SearchByName(ctx context.Context, namePart string) ([]TenantRef, error)
}

var (
	ErrTenantNotFound = errors.New("tenant_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidGender  = errors.New("invalid_gender")
)
