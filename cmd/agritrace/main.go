package main

import (
	"context"
	"log/slog"
	"os"

	"agritrace/config"
	"agritrace/internal/delivery"
	"agritrace/internal/delivery/http"
	"agritrace/internal/delivery/http/middleware"
	"agritrace/internal/delivery/http/router/handler"
	"agritrace/internal/domain/repository"
	"agritrace/internal/domain/service"
	"agritrace/internal/infra/auth"
	"agritrace/internal/infra/gov"
	logs "agritrace/internal/infra/log"
	"agritrace/internal/infra/memstore"
	"agritrace/internal/infra/qrcode"
	"agritrace/internal/infra/sms"
	"agritrace/internal/usecase/impl"

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
			seedDemoData,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memstore.NewProductRepository,
			memstore.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			sms.NewSMSService,
			gov.NewVerificationService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(300, "M", "http://localhost:3000")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLedgerService,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewAuthHandler,
			handler.NewQRHandler,
			handler.NewExternalHandler,
			handler.NewStatusHandler,
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

type seedParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Hasher      service.PasswordHasher
}

// seedDemoData loads the demo accounts and sample products when the demo
// config enables them. The ledger starts empty otherwise.
func seedDemoData(ctx context.Context, params seedParams) error {
	if params.Config.Demo == nil {
		return nil
	}

	if params.Config.Demo.SeedUsers {
		if err := memstore.SeedDemoUsers(ctx, params.UserRepo, params.Hasher, params.Logger); err != nil {
			return err
		}
	}

	if params.Config.Demo.SeedProducts {
		if err := memstore.SeedDemoProducts(ctx, params.ProductRepo, params.Logger); err != nil {
			return err
		}
	}

	return nil
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
