// Package repair contiene las operaciones correctivas e idempotentes sobre el libro y el stock.
// Cada operación recibe identificadores explícitos y nunca recalcula anomalías.
package repair

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio contable atado a ella.
type TxRunner interface {
	RunJournal(ctx context.Context, fn func(journal repository.JournalRepository) error) error
}

// Config parámetros de las reparaciones.
type Config struct {
	Tolerance          decimal.Decimal // cero = domain.Tolerance
	AdjustmentLookback time.Duration   // cero = 24h
}

// Outcome resultado de una reparación sobre una fila.
type Outcome struct {
	ID      string `json:"id"`
	Applied bool   `json:"applied"`
	Err     error  `json:"-"`
}

// Service reparaciones del libro auxiliar y del stock.
type Service struct {
	tx        TxRunner
	journal   repository.JournalRepository
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	cache     ports.BalanceCache
	locker    ports.Locker
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewService construye el servicio. cache y locker pueden ser implementaciones noop.
func NewService(
	tx TxRunner,
	journal repository.JournalRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	cache ports.BalanceCache,
	locker ports.Locker,
	log *logger.Logger,
	cfg Config,
) *Service {
	if cfg.Tolerance.IsZero() {
		cfg.Tolerance = domain.Tolerance
	}
	if cfg.AdjustmentLookback <= 0 {
		cfg.AdjustmentLookback = 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		tx:        tx,
		journal:   journal,
		movements: movements,
		products:  products,
		cache:     cache,
		locker:    locker,
		log:       log.Named("repair"),
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// invalidate borra los saldos cacheados de las cuentas tocadas. Un fallo del caché no revierte
// la reparación: queda registrado y la entrada expira por TTL.
func (s *Service) invalidate(ctx context.Context, accountIDs ...string) {
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := s.cache.InvalidateAccount(ctx, id); err != nil {
			s.log.Error().Err(err).Str("account_id", id).Msg("invalidar caché de saldos")
		}
	}
}

func (s *Service) withLock(ctx context.Context, key string, fn func() error) error {
	release, err := s.locker.Obtain(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn().Err(err).Str("lock", key).Msg("liberar bloqueo")
		}
	}()
	return fn()
}
