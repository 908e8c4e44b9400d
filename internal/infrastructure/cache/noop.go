package cache

import (
	"context"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
)

var (
	_ ports.BalanceCache = NoopCache{}
	_ ports.Locker       = NoopLocker{}
)

// NoopCache nunca encuentra nada y descarta las escrituras.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCache) Generation(context.Context, string) (uint64, error) { return 0, nil }
func (NoopCache) Set(context.Context, string, uint64, string, any) (bool, error) { return false, nil }
func (NoopCache) InvalidateAccount(context.Context, string) error { return nil }

// NoopLocker concede siempre el bloqueo.
type NoopLocker struct{}

func (NoopLocker) Obtain(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
