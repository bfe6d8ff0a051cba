package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/ecommerce-api/docs"
	appanalytics "github.com/jhoicas/ecommerce-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/ecommerce-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/ecommerce-api/internal/interfaces/http"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewRefreshTokenRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos de pedidos: sin RABBITMQ_URL el caso de uso usa un publisher no-op.
	var publisher ordering.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos de pedidos desactivados")
		} else {
			defer rabbit.Close()
			publisher = rabbit
		}
	}

	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		RefreshTTL: cfg.JWT.RefreshTTL(),
	}, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo)
	orderUC := ordering.NewOrderUseCase(txRunner, orderRepo, publisher, receipts, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	authLimiter := newAuthLimiter(ctx, cfg, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "E-commerce API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		CartUC:      cartUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		Customers:   userRepo,
		AuthLimiter: authLimiter,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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

// newAuthLimiter token bucket de las rutas públicas de auth: Redis si responde al arrancar,
// si no uno por proceso. nil si el rate limit está desactivado.
func newAuthLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	rlCfg := ratelimit.Config{
		Capacity:        cfg.RateLimit.Capacity,
		RefillPerMinute: cfg.RateLimit.RefillPerMinute,
		Prefix:          cfg.RateLimit.Prefix,
	}
	if cfg.Redis.Addr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limit sobre Redis")
			return ratelimit.NewRedisLimiter(rdb, rlCfg)
		}
		log.Warn().Err(err).Msg("Redis no disponible, rate limit en memoria")
	}
	return ratelimit.NewLocalLimiter(rlCfg)
}
