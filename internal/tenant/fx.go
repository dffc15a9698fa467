package tenant

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(service.NewService),
)
