package notify

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("notify",
	fx.Provide(DefaultConfig),
	fx.Provide(
		fx.Annotate(NewLogSender, fx.As(new(Sender))),
	),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, worker *Worker) {
	// The OnStart context only lives for the startup phase, so the loop
	// gets its own, cancelled on shutdown.
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go worker.RunForever(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
