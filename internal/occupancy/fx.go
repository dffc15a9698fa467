package occupancy

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("occupancy.service",
	fx.Provide(service.NewService),
)
