package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cache define la interfaz para una caché de clave-valor genérica.
type Cache interface {
	// Get intenta poblar 'dest' (que debe ser un puntero) con el valor asociado a la 'key'.
	// Devuelve (true, nil) si hay un 'hit' y 'dest' fue rellenado.
	// Devuelve (false, nil) si es un 'miss'.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa y guarda el valor con un TTL en segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete elimina la 'key' de la caché.
	Delete(ctx context.Context, key string) error
}

// AsyncSet actualiza la caché en background sin bloquear la respuesta.
func AsyncSet(ctx context.Context, c Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if c == nil {
		return
	}

	go func() {
		// context.Background() deliberado: la actualización debe poder completarse
		// aunque la petición original ya haya sido cancelada.
		cacheCtx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		if err := c.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// AsyncDelete elimina de caché en background.
func AsyncDelete(ctx context.Context, c Cache, key string, log *zap.Logger) {
	if c == nil {
		return
	}

	go func() {
		if err := c.Delete(ctx, key); err != nil {
			log.Warn("Cache deletion failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}
