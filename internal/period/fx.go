package period

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/period/service"
	"go.uber.org/fx"
)

var Module = fx.Module("period",
	fx.Provide(
		service.NewService,
	),
)
