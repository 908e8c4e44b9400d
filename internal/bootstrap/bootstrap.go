// Package bootstrap arma las dependencias compartidas por la API y las CLIs:
// pool de PostgreSQL, Redis opcional, repositorios y casos de uso.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ledger-recon/internal/application/audit"
	"github.com/jhoicas/ledger-recon/internal/application/inventory"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/cache"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/excel"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/pdf"
	"github.com/jhoicas/ledger-recon/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-recon/pkg/config"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// App dependencias construidas. Close libera pool y cliente Redis.
type App struct {
	Cfg   *config.Config
	Log   *logger.Logger
	Pool  *pgxpool.Pool
	Redis *redis.Client // nil si Redis no está configurado

	Audit     *audit.UseCase
	Inventory *inventory.UseCase
	Repairs   *repair.Service
	PDF       ports.StatementPDFGenerator
	XLSX      ports.SpreadsheetExporter
}

// New conecta a PostgreSQL (y a Redis si REDIS_ADDRESS está definido) y construye los casos de uso.
// Sin Redis se usan caché y bloqueo no-op: las reparaciones siguen siendo idempotentes.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	app := &App{Cfg: cfg, Log: log, Pool: pool}

	var (
		balanceCache ports.BalanceCache = cache.NoopCache{}
		locker       ports.Locker       = cache.NoopLocker{}
	)
	if cfg.Redis.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		app.Redis = rdb
		balanceCache = cache.NewRedisBalanceCache(rdb, cfg.Recon.CacheTTL)
		locker = cache.NewRedisLocker(rdb, cfg.Recon.LockTTL)
	} else {
		log.Warn().Msg("REDIS_ADDRESS vacío: sin caché de saldos ni bloqueo distribuido")
	}

	journal := postgres.NewJournalRepository(pool)
	products := postgres.NewProductRepository(pool)
	movements := postgres.NewStockMovementRepository(pool)

	app.Audit = audit.NewUseCase(audit.Repositories{
		Contacts: postgres.NewContactRepository(pool),
		Accounts: postgres.NewAccountRepository(pool),
		Sales:    postgres.NewSaleRepository(pool),
		Payments: postgres.NewPaymentRepository(pool),
		Journal:  journal,
	}, balanceCache, log, audit.Config{
		ReceivableCode: cfg.Recon.ReceivableCode,
		Tolerance:      cfg.Recon.Tolerance,
	})
	app.Inventory = inventory.NewUseCase(products, movements, log, cfg.Recon.Tolerance)
	app.Repairs = repair.NewService(
		postgres.NewTxRunner(pool), journal, movements, products,
		balanceCache, locker, log,
		repair.Config{Tolerance: cfg.Recon.Tolerance, AdjustmentLookback: cfg.Recon.AdjustmentLookback},
	)
	app.PDF = pdf.NewMarotoPDFGenerator()
	app.XLSX = excel.NewExporter()
	return app, nil
}

// Close libera las conexiones.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn().Err(err).Msg("cerrar Redis")
		}
	}
	a.Pool.Close()
}
