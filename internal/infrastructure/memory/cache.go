package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
)

var (
	_ ports.BalanceCache = (*Cache)(nil)
	_ ports.Locker       = (*Locker)(nil)
)

// Cache BalanceCache en memoria con la misma semántica de índice por cuenta que la versión Redis.
type Cache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	index       map[string]map[string]struct{}
	gens        map[string]uint64
	Invalidated []string // cuentas invalidadas, en orden
}

// NewCache crea un caché vacío.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]byte),
		index:   make(map[string]map[string]struct{}),
		gens:    make(map[string]uint64),
	}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) Generation(_ context.Context, accountID string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[accountID], nil
}

func (c *Cache) Set(_ context.Context, accountID string, gen uint64, key string, v any) (bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[accountID] != gen {
		return false, nil
	}
	c.entries[key] = b
	if c.index[accountID] == nil {
		c.index[accountID] = make(map[string]struct{})
	}
	c.index[accountID][key] = struct{}{}
	return true, nil
}

func (c *Cache) InvalidateAccount(_ context.Context, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[accountID]++
	for key := range c.index[accountID] {
		delete(c.entries, key)
	}
	delete(c.index, accountID)
	c.Invalidated = append(c.Invalidated, accountID)
	return nil
}

// Len número de entradas vigentes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Locker bloqueo en proceso; las claves en Held simulan un bloqueo tomado por otro proceso.
type Locker struct {
	mu   sync.Mutex
	Held map[string]bool
}

// NewLocker crea un locker sin bloqueos.
func NewLocker() *Locker {
	return &Locker{Held: make(map[string]bool)}
}

func (l *Locker) Obtain(_ context.Context, key string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Held[key] {
		return nil, domain.ErrLockNotObtained
	}
	l.Held[key] = true
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.Held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
