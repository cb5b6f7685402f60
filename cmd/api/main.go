package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-admin-api/internal/application/authadmin"
	"github.com/jhoicas/tienda-admin-api/internal/application/authcustomer"
	"github.com/jhoicas/tienda-admin-api/internal/application/notifier"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/mailer"
	infrapdf "github.com/jhoicas/tienda-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tienda-admin-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	// Repositorios
	adminUserRepo := postgres.NewAdminUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	customerTokenRepo := postgres.NewCustomerTokenRepository(pool)
	verificationRepo := postgres.NewVerificationCodeRepository(pool)
	passwordResetRepo := postgres.NewPasswordResetRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productImageRepo := postgres.NewProductImageRepository(pool)
	productVariantRepo := postgres.NewProductVariantRepository(pool)
	sizeRepo := postgres.NewSizeRepository(pool)
	colorRepo := postgres.NewColorRepository(pool)
	sliderRepo := postgres.NewSliderRepository(pool)
	kuponRepo := postgres.NewCouponRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Outbox de notificaciones: un worker en segundo plano, enqueue sin bloqueo
	dispatcher := notifier.NewDispatcher(mailer.NewSMTPMailer(cfg.Mail), log, cfg.Mail.QueueSize)
	dispatcher.Start()
	defer dispatcher.Close()

	resetTTL := time.Duration(cfg.Mail.ResetTTLMinutes) * time.Minute

	// Casos de uso
	authUC := authadmin.NewUseCase(adminUserRepo, passwordResetRepo, dispatcher, authadmin.Config{
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		JWTExpMin:    cfg.JWT.Expiration,
		ResetTTL:     resetTTL,
		ResetLinkURL: cfg.App.BaseURL + "/admin/reset-password",
	})
	customerAuthUC := authcustomer.NewUseCase(
		customerRepo, customerTokenRepo, verificationRepo, passwordResetRepo, dispatcher,
		authcustomer.Config{
			ResetTTL:     resetTTL,
			ResetLinkURL: cfg.App.BaseURL + "/reset-password",
		},
	)
	userUC := usecase.NewUserUseCase(adminUserRepo)
	customerAdminUC := usecase.NewCustomerAdminUseCase(customerRepo)
	kategoriUC := usecase.NewKategoriUseCase(categoryRepo, store)
	productUC := usecase.NewProductUseCase(productRepo, productImageRepo, productVariantRepo, categoryRepo, txRunner, store)
	exportUC := usecase.NewCatalogExportUseCase(productRepo, categoryRepo, infrapdf.NewCatalogPDFGenerator(), cfg.App.Name)
	sizeUC := usecase.NewSizeUseCase(sizeRepo, colorRepo)
	colorUC := usecase.NewColorUseCase(colorRepo)
	sliderUC := usecase.NewSliderUseCase(sliderRepo, store)
	kuponUC := usecase.NewKuponUseCase(kuponRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // subida de imágenes de producto
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Admin API",
	}))

	// Imágenes subidas (productos, categorías, sliders)
	app.Static(cfg.Storage.BaseURL, store.Dir())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CustomerAuthUC:  customerAuthUC,
		UserUC:          userUC,
		CustomerAdminUC: customerAdminUC,
		KategoriUC:      kategoriUC,
		ProductUC:       productUC,
		ExportUC:        exportUC,
		SizeUC:          sizeUC,
		ColorUC:         colorUC,
		SliderUC:        sliderUC,
		KuponUC:         kuponUC,
		CustomerTokens:  customerTokenRepo,
		Customers:       customerRepo,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
