package ports

import "context"

// BalanceCache puerto de salida para cachear reportes derivados (saldos, auditorías).
// El caché nunca es fuente de verdad: toda escritura sobre una cuenta invalida sus entradas.
// Adaptadores: Redis (go-redis) y NoopCache cuando Redis no está configurado.
//
// Cada cuenta tiene una generación que InvalidateAccount incrementa. Quien calcula un reporte
// lee la generación antes de cargar los datos y la pasa a Set: si entre medio hubo una
// invalidación, Set descarta el reporte.
type BalanceCache interface {
	// Get deserializa en dst la entrada de key. found es false si no existe o expiró.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	// Generation devuelve la generación vigente de la cuenta (0 si nunca se invalidó).
	Generation(ctx context.Context, accountID string) (uint64, error)
	// Set guarda v bajo key y lo registra en el índice de accountID, solo si la generación de
	// la cuenta sigue siendo gen. stored es false cuando el reporte quedó obsoleto.
	Set(ctx context.Context, accountID string, gen uint64, key string, v any) (stored bool, err error)
	// InvalidateAccount incrementa la generación y borra las entradas registradas para la cuenta.
	InvalidateAccount(ctx context.Context, accountID string) error
}

// Locker puerto de bloqueo distribuido para serializar reparaciones sobre la misma fila.
type Locker interface {
	// Obtain devuelve domain.ErrLockNotObtained si otro proceso tiene el bloqueo.
	// release libera el bloqueo; llamarlo más de una vez no es error.
	Obtain(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// Claves de caché y bloqueo compartidas por los casos de uso.
func SubjectKey(companyID, subjectID string) string {
	return "ledger:subject:" + companyID + ":" + subjectID
}

func AccountAuditKey(companyID, accountID string) string {
	return "ledger:account:" + companyID + ":" + accountID
}

func LineLockKey(lineID string) string {
	return "lock:journal_line:" + lineID
}

func ProductLockKey(companyID, productID string) string {
	return "lock:stock_adjustment:" + companyID + ":" + productID
}
