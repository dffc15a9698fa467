package expense

import (
	"github.com/Ed-Isingoma/hostelmgrserv/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(service.NewService),
)
