package storage

import (
	"context"
	"errors"
)

// ErrUnavailable marca fallas de conectividad con el store. Los
// adapters envuelven con esto; los services lo propagan sin
// convertirlo en "not found".
var ErrUnavailable = errors.New("store unavailable")

// ErrNotFound marca la ausencia del registro pedido. Los repos lo
// devuelven en los misses; cualquier otro error de repo es una falla
// real y los services lo propagan, nunca lo leen como "no había
// registro".
var ErrNotFound = errors.New("not found")

// TxRunner agrupa escrituras en una transacción. Un WithinTx anidado
// se une a la transacción externa en vez de abrir (y commitear) una
// propia; commit/rollback los decide solo el scope más externo.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
