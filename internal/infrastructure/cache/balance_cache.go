package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ledger-recon/internal/application/ports"
)

var _ ports.BalanceCache = (*RedisBalanceCache)(nil)

// RedisBalanceCache guarda reportes como JSON con TTL. Cada cuenta mantiene un set con
// las claves derivadas de ella para poder invalidarlas juntas.
type RedisBalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisBalanceCache construye el caché. ttl <= 0 usa 5 minutos.
func NewRedisBalanceCache(rdb *redis.Client, ttl time.Duration) *RedisBalanceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisBalanceCache{rdb: rdb, ttl: ttl}
}

func indexKey(accountID string) string {
	return "ledger:index:" + accountID
}

func genKey(accountID string) string {
	return "ledger:gen:" + accountID
}

// setIfGeneration escribe la entrada solo si la generación de la cuenta no cambió.
// KEYS: gen, entrada, índice. ARGV: generación esperada, valor, ttl en ms.
var setIfGeneration = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if not cur then cur = "0" end
if cur ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
redis.call("SADD", KEYS[3], KEYS[2])
redis.call("PEXPIRE", KEYS[3], 2 * tonumber(ARGV[3]))
return 1
`)

// Get lee y deserializa key.
func (c *RedisBalanceCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Generation lee ledger:gen:<cuenta>. La clave no expira; ausente equivale a 0.
func (c *RedisBalanceCache) Generation(ctx context.Context, accountID string) (uint64, error) {
	gen, err := c.rdb.Get(ctx, genKey(accountID)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", genKey(accountID), err)
	}
	return gen, nil
}

// Set guarda v y registra key en el índice de la cuenta si la generación sigue siendo gen.
// La comparación y la escritura corren en un solo script, así una invalidación concurrente
// no puede quedar en medio.
func (c *RedisBalanceCache) Set(ctx context.Context, accountID string, gen uint64, key string, v any) (bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	keys := []string{genKey(accountID), key, indexKey(accountID)}
	stored, err := setIfGeneration.Run(ctx, c.rdb, keys, strconv.FormatUint(gen, 10), b, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
	return stored == 1, nil
}

// InvalidateAccount sube la generación de la cuenta y borra las claves indexadas y el índice.
// El INCR va primero: un Set que leyó la generación anterior ya no puede escribir.
func (c *RedisBalanceCache) InvalidateAccount(ctx context.Context, accountID string) error {
	if err := c.rdb.Incr(ctx, genKey(accountID)).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", genKey(accountID), err)
	}
	idx := indexKey(accountID)
	keys, err := c.rdb.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("redis smembers %s: %w", idx, err)
	}
	keys = append(keys, idx)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", idx, err)
	}
	return nil
}
