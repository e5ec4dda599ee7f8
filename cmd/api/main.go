package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brickapp/brickapp-api/docs"
	"github.com/brickapp/brickapp-api/internal/application/analytics"
	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/consulta"
	"github.com/brickapp/brickapp-api/internal/application/ports"
	"github.com/brickapp/brickapp-api/internal/application/usecase"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/infrastructure/cache"
	"github.com/brickapp/brickapp-api/internal/infrastructure/lookup"
	infrapdf "github.com/brickapp/brickapp-api/internal/infrastructure/pdf"
	"github.com/brickapp/brickapp-api/internal/infrastructure/postgres"
	"github.com/brickapp/brickapp-api/internal/infrastructure/report"
	"github.com/brickapp/brickapp-api/internal/infrastructure/scheduler"
	"github.com/brickapp/brickapp-api/internal/infrastructure/ubl"
	httpRouter "github.com/brickapp/brickapp-api/internal/interfaces/http"
	"github.com/brickapp/brickapp-api/pkg/config"
	"github.com/brickapp/brickapp-api/pkg/logger"
)

// @title                       BrickApp API
// @version                     1.0
// @description                 Administración de ladrilleras: catálogos, producción, ventas, entregas y comprobantes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	if cfg.JWT.Secret == "" {
		// solo fuera de producción (config.validate lo exige allí)
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio, las sesiones no sobreviven a un reinicio")
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	permisoRepo := postgres.NewPermisoRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	personalRepo := postgres.NewPersonalRepository(pool)
	hornoRepo := postgres.NewHornoRepository(pool)
	coccionRepo := postgres.NewCoccionRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	entregaRepo := postgres.NewEntregaRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	permisoSvc := auth.NewPermisoService(permisoRepo, rolRepo)
	n, err := permisoSvc.SyncCatalogo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("sincronizar catálogo de permisos")
	}
	log.Info().Int("permisos", n).Msg("catálogo de permisos sincronizado")

	// Caché: Redis si está configurado; si no, en memoria (un solo proceso).
	var appCache ports.Cache
	var memCache *cache.MemoryCache
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL, "brickapp:")
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		appCache = rc
		log.Info().Msg("caché en Redis")
	} else {
		memCache = cache.NewMemoryCache()
		appCache = memCache
		log.Info().Msg("caché en memoria")
	}
	revocations := auth.NewRevocationStore(appCache).WithSesionTTL(time.Duration(cfg.JWT.Expiration) * time.Minute)

	authUC := auth.NewAuthUseCase(usuarioRepo, empresaRepo, permisoSvc, revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	ventaUC := venta.NewUseCase(ventaRepo, entregaRepo, clienteRepo, productoRepo, txRunner)
	entregaUC := venta.NewEntregaUseCase(ventaRepo, entregaRepo, txRunner)
	documentoUC := venta.NewDocumentoUseCase(
		ventaRepo, empresaRepo, clienteRepo, productoRepo,
		infrapdf.NewMarotoPDFGenerator(), ubl.NewInvoiceBuilder(), report.NewVentasExcelWriter(),
	)
	consultaUC := consulta.NewUseCase(
		lookup.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.Token, cfg.Lookup.Timeout),
		appCache, cfg.Lookup.CacheTTL,
	)

	loginLimiter := httpRouter.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)

	jobs := scheduler.New(log)
	mustAdd(log, jobs, scheduler.Job{
		Name: "limpiar-limitadores",
		Spec: "@every 10m",
		Run: func(context.Context) error {
			n := loginLimiter.Cleanup(30 * time.Minute)
			log.Debug().Int("eliminados", n).Msg("limitadores de login purgados")
			return nil
		},
	})
	if memCache != nil {
		mustAdd(log, jobs, scheduler.Job{
			Name: "purgar-cache",
			Spec: "@every 5m",
			Run: func(context.Context) error {
				n := memCache.Purge()
				log.Debug().Int("expiradas", n).Int("vigentes", memCache.Len()).Msg("caché purgada")
				return nil
			},
		})
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BrickApp API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PermisoSvc:   permisoSvc,
		EmpresaUC:    usecase.NewEmpresaUseCase(empresaRepo),
		UsuarioUC:    usecase.NewUsuarioUseCase(usuarioRepo, rolRepo).WithSesiones(revocations),
		RolUC:        usecase.NewRolUseCase(rolRepo, usuarioRepo, txRunner).WithSesiones(revocations),
		ProductoUC:   usecase.NewProductoUseCase(productoRepo),
		ClienteUC:    usecase.NewClienteUseCase(clienteRepo),
		ProveedorUC:  usecase.NewProveedorUseCase(proveedorRepo),
		PersonalUC:   usecase.NewPersonalUseCase(personalRepo),
		HornoUC:      usecase.NewHornoUseCase(hornoRepo),
		CoccionUC:    usecase.NewCoccionUseCase(coccionRepo, hornoRepo, personalRepo),
		VentaUC:      ventaUC,
		EntregaUC:    entregaUC,
		DocumentoUC:  documentoUC,
		ConsultaUC:   consultaUC,
		DashboardUC:  analytics.NewDashboardUseCase(dashboardRepo),
		JWTSecret:    cfg.JWT.Secret,
		Revocations:  revocations,
		LoginLimiter: loginLimiter,
		CookieSecure: cfg.JWT.CookieSecure,
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

	jobs.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func mustAdd(log *logger.Logger, s *scheduler.Scheduler, job scheduler.Job) {
	if err := s.Add(job); err != nil {
		log.Fatal().Err(err).Str("job", job.Name).Msg("registrar tarea")
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secreto: " + err.Error())
	}
	return hex.EncodeToString(b)
}
