package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/brickapp/brickapp-api/internal/application/ports"
	"github.com/brickapp/brickapp-api/pkg/jwt"
)

const (
	prefijoRevocada = "sesion:revocada:"
	prefijoUsuario  = "sesion:usuario:"
	prefijoRol      = "sesion:rol:"
)

// RevocationStore lista de tokens revocados (logout) indexada por jti, más marcas
// por usuario y por rol que invalidan los tokens emitidos antes de la marca.
// Las entradas expiran junto con los tokens, así el almacén no crece sin límite.
type RevocationStore struct {
	cache     ports.Cache
	sesionTTL time.Duration
	now       func() time.Time
}

// NewRevocationStore construye el almacén sobre la caché configurada.
func NewRevocationStore(cache ports.Cache) *RevocationStore {
	return &RevocationStore{cache: cache, sesionTTL: 24 * time.Hour, now: time.Now}
}

// WithSesionTTL fija cuánto duran las marcas por usuario o rol; debe cubrir la vida del JWT.
func (s *RevocationStore) WithSesionTTL(d time.Duration) *RevocationStore {
	if d > 0 {
		s.sesionTTL = d
	}
	return s
}

// Revoke marca el jti como revocado durante ttl.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, prefijoRevocada+jti, "1", ttl)
}

// IsRevoked indica si el jti fue revocado.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, ok, err := s.cache.Get(ctx, prefijoRevocada+jti)
	return ok, err
}

// InvalidarUsuario invalida las sesiones del usuario emitidas antes de este segundo.
func (s *RevocationStore) InvalidarUsuario(ctx context.Context, userID string) error {
	return s.marcar(ctx, prefijoUsuario+userID)
}

// InvalidarRol invalida las sesiones emitidas con el rol antes de este segundo.
func (s *RevocationStore) InvalidarRol(ctx context.Context, rolID string) error {
	return s.marcar(ctx, prefijoRol+rolID)
}

// SesionRevocada combina el logout por jti con las marcas del usuario y del rol.
// iat tiene precisión de segundos: un token emitido en el mismo segundo que la marca sigue vigente.
func (s *RevocationStore) SesionRevocada(ctx context.Context, c *jwt.Claims) (bool, error) {
	if r, err := s.IsRevoked(ctx, c.ID); err != nil || r {
		return r, err
	}
	if c.IssuedAt == nil {
		return false, nil
	}
	iat := c.IssuedAt.Unix()
	for _, key := range []string{prefijoUsuario + c.UserID, prefijoRol + c.RolID} {
		v, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		marca, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, fmt.Errorf("revocación: marca inválida en %s: %w", key, err)
		}
		if iat < marca {
			return true, nil
		}
	}
	return false, nil
}

func (s *RevocationStore) marcar(ctx context.Context, key string) error {
	return s.cache.Set(ctx, key, strconv.FormatInt(s.now().Unix(), 10), s.sesionTTL)
}
