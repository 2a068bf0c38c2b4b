package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/VaibhavPTM/resort-sas-project/config"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/middleware"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/router/handler"
	"github.com/VaibhavPTM/resort-sas-project/internal/infra/auth"
	"github.com/VaibhavPTM/resort-sas-project/internal/infra/auth/google"
	logs "github.com/VaibhavPTM/resort-sas-project/internal/infra/log"
	"github.com/VaibhavPTM/resort-sas-project/internal/infra/persistence/postgres"
	"github.com/VaibhavPTM/resort-sas-project/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewVerifier,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
