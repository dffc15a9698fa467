package dashboard

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard",
	fx.Provide(
		service.NewService,
	),
)
