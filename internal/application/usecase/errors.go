package usecase

import (
	"context"
	"fmt"

	"github.com/brickapp/brickapp-api/internal/domain"
)

// SesionInvalidator corta las sesiones emitidas antes del cambio. Lo implementa auth.RevocationStore.
type SesionInvalidator interface {
	InvalidarUsuario(ctx context.Context, userID string) error
	InvalidarRol(ctx context.Context, rolID string) error
}

func notFound(recurso string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, recurso)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrConflict, fmt.Sprintf(format, args...))
}
