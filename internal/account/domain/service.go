package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type UpdateAccountRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *Role   `json:"role"`
	Approved *bool   `json:"approved"`
}

// Service exposes operator accounts. Sessions, tokens and transport
// auth live outside this engine; Login is a plain credential lookup.
type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (*Account, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateAccountRequest) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Get(ctx context.Context, id snowflake.ID) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	ListUnapproved(ctx context.Context) ([]Account, error)
	Login(ctx context.Context, username, password string) (*Account, error)
}

var (
	ErrAccountNotFound  = errors.New("account_not_found")
	ErrInvalidUsername  = errors.New("invalid_username")
	ErrInvalidPassword  = errors.New("invalid_password")
	ErrInvalidRole      = errors.New("invalid_role")
	ErrLoginFailed      = errors.New("login_failed")
)
