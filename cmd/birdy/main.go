package main

import (
	"context"
	"log/slog"
	"os"

	"birdy/config"
	"birdy/internal/delivery"
	"birdy/internal/delivery/api"
	apimiddleware "birdy/internal/delivery/api/middleware"
	"birdy/internal/delivery/api/router/handler"
	"birdy/internal/domain/repository"
	"birdy/internal/errors"
	"birdy/internal/infra/auth"
	logs "birdy/internal/infra/log"
	"birdy/internal/infra/persistence/memory"
	"birdy/internal/infra/persistence/postgres"
	"birdy/internal/infra/pubsub"
	"birdy/internal/infra/qrcode"
	"birdy/internal/usecase/impl"

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
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newTransactionManager,
		),
	)
}

// newTransactionManager picks the repository backend named by storage.driver.
func newTransactionManager(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.TransactionManager, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data will not survive a restart")

		return memory.NewTransactionManager(), nil
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: lc, Config: cfg, Logger: logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil
	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewSessionTokenService,
			auth.NewConfirmationTokenService,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccessService,
			impl.NewAccountService,
			impl.NewUserService,
			impl.NewFriendService,
			impl.NewChatService,
			impl.NewDialogService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewUserHandler,
			handler.NewFriendHandler,
			handler.NewChatHandler,
			handler.NewDialogHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
