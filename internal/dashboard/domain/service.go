package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service assembles the per-cycle dashboard summary.
type Service interface {
	Summary(ctx context.Context, cycleID snowflake.ID) (*Summary, error)
}
