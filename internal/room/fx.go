package room

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/room/service"
	"go.uber.org/fx"
)

var Module = fx.Module("room.service",
	fx.Provide(service.NewService),
)
