package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/finance_tracker/internal/auth"
	"github.com/finance-tracker/finance_tracker/internal/cache"
	"github.com/finance-tracker/finance_tracker/internal/config"
	"github.com/finance-tracker/finance_tracker/internal/identity"
	"github.com/finance-tracker/finance_tracker/internal/infra"
	"github.com/finance-tracker/finance_tracker/internal/ledger"
	"github.com/finance-tracker/finance_tracker/internal/middleware"
	"github.com/finance-tracker/finance_tracker/internal/notification"
	"github.com/finance-tracker/finance_tracker/internal/report"
)

const summaryCachePrefix = "summary:v1:"

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database the in-memory stores are used, which is only allowed in
// development.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(recover.New())
	if len(d.Cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(d.Cfg.CORSOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		}))
	}

	RegisterHealthRoutes(app, infra.Health{DB: d.DB, Cache: d.Cache})

	// Services and handlers
	var (
		users   identity.Repository
		entries ledger.Store
	)
	if d.DB != nil {
		users = identity.NewPostgresRepository(d.DB)
		entries = ledger.NewPostgresStore(d.DB)
	} else {
		d.Logger.Warn("no database configured, using in-memory stores")
		users = identity.NewMemoryRepository()
		entries = ledger.NewInMemory()
	}

	tokens, err := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.JWTIssuer)
	if err != nil {
		return err
	}
	authSvc, err := auth.NewService(users, auth.NewPasswordHasher(d.Cfg.BcryptCost), tokens, d.Logger)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	ledgerSvc := ledger.NewService(entries)
	var reportOpts []report.Option
	if d.Cache != nil {
		summaries := cache.NewViewCache[report.Summary](d.Cache, summaryCachePrefix, d.Cfg.SummaryCacheTTL, d.Logger)
		reportOpts = append(reportOpts, report.WithSummaryCache(summaries))
	}
	reportSvc := report.NewService(ledgerSvc, users, d.Logger, reportOpts...)
	ledgerSvc.OnRecord(reportSvc.InvalidateSummary)
	ledgerSvc.OnRecord(notification.OnEntryRecorded(notification.NewLoggerNotifier(d.Logger), d.Logger))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, auth.NewHandler(authSvc))

	// Protected routes
	protected := api.Group("", middleware.SessionGuard(tokens, d.Logger))
	RegisterReportRoutes(protected, report.NewHandler(reportSvc))
	idempotent := middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	RegisterLedgerRoutes(protected, ledger.NewHandler(ledgerSvc), idempotent)

	return nil
}
