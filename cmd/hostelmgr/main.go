package main

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/account"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/config"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/contract"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/dashboard"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/events"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/expense"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/ledger"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/migration"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/notify"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/observability/logger"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/payment"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/period"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/room"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/seed"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/server"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/tenant"
	"github.com/Ed-Isingoma/hostelmgrserv/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		fx.Invoke(prepareDatabase),

		events.Module,
		account.Module,
		tenant.Module,
		room.Module,
		billingcycle.Module,
		contract.Module,
		payment.Module,
		expense.Module,
		ledger.Module,
		occupancy.Module,
		period.Module,
		dashboard.Module,
		notify.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

// prepareDatabase applies pending migrations and seeds an empty store
// before any service takes traffic.
func prepareDatabase(cfg config.Config, conn *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	if cfg.MigrateOnStart {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := migration.RunMigrations(sqlDB); err != nil {
			return err
		}
	}
	if cfg.SeedOnStart {
		if err := seed.Bootstrap(conn, genID, log); err != nil {
			return err
		}
	}
	return nil
}
