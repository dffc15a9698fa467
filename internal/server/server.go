package server

import (
	"context"
	"errors"
	"net/http"

	accountdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/account/domain"
	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/clock"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/config"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	dashboarddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/dashboard/domain"
	expensedomain "github.com/Ed-Isingoma/hostelmgrserv/internal/expense/domain"
	ledgerdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/ledger/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/observability/logger"
	occupancydomain "github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy/domain"
	paymentdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/payment/domain"
	perioddomain "github.com/Ed-Isingoma/hostelmgrserv/internal/period/domain"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Accounts  accountdomain.Service
	Tenants   tenantdomain.Service
	Rooms     roomdomain.Service
	Cycles    cycledomain.Service
	Contracts contractdomain.Service
	Payments  paymentdomain.Service
	Expenses  expensedomain.Service
	Ledger    ledgerdomain.Service
	Occupancy occupancydomain.Service
	Periods   perioddomain.Service
	Dashboard dashboarddomain.Service
}

type Server struct {
	log          *zap.Logger
	clock        clock.Clock
	accountSvc   accountdomain.Service
	tenantSvc    tenantdomain.Service
	roomSvc      roomdomain.Service
	cycleSvc     cycledomain.Service
	contractSvc  contractdomain.Service
	paymentSvc   paymentdomain.Service
	expenseSvc   expensedomain.Service
	ledgerSvc    ledgerdomain.Service
	occupancySvc occupancydomain.Service
	periodSvc    perioddomain.Service
	dashboardSvc dashboarddomain.Service
	dispatcher   *Dispatcher
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware())
	return engine
}

func NewServer(p Params) *Server {
	s := &Server{
		log:          p.Log.Named("server"),
		clock:        p.Clock,
		accountSvc:   p.Accounts,
		tenantSvc:    p.Tenants,
		roomSvc:      p.Rooms,
		cycleSvc:     p.Cycles,
		contractSvc:  p.Contracts,
		paymentSvc:   p.Payments,
		expenseSvc:   p.Expenses,
		ledgerSvc:    p.Ledger,
		occupancySvc: p.Occupancy,
		periodSvc:    p.Periods,
		dashboardSvc: p.Dashboard,
	}
	s.dispatcher = NewDispatcher(p.Log)
	s.registerOperations()
	return s
}

// RegisterRoutes mounts the health probe and the dispatch endpoint.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Server is running"})
	})
	engine.POST("/call", s.dispatcher.Handle)
}

// RunHTTP ties the HTTP listener to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine, db *gorm.DB) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
