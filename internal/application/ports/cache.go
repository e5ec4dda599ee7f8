package ports

import (
	"context"
	"time"
)

// Cache almacén clave/valor con expiración. Lo implementan el adaptador Redis
// y el adaptador en memoria; la aplicación no conoce cuál se usa.
type Cache interface {
	// Get devuelve el valor y true si la clave existe y no expiró.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
