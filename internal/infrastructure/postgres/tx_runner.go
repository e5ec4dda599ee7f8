package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brickapp/brickapp-api/internal/application/onboarding"
	"github.com/brickapp/brickapp-api/internal/application/usecase"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var (
	_ venta.TxRunner      = (*TxRunner)(nil)
	_ usecase.RolTxRunner = (*TxRunner)(nil)
	_ onboarding.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVenta transacción de venta: cabecera, numeración y entregas comparten la tx.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	numeracionRepo repository.NumeracionRepository,
	entregaRepo repository.EntregaRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewVentaRepository(tx), NewNumeracionRepository(tx), NewEntregaRepository(tx))
	})
}

// RunRol transacción para reemplazar los permisos de un rol.
func (r *TxRunner) RunRol(ctx context.Context, fn func(rolRepo repository.RolRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewRolRepository(tx))
	})
}

// RunOnboarding transacción de alta de empresa con su rol y usuario administrador.
func (r *TxRunner) RunOnboarding(ctx context.Context, fn func(
	empresaRepo repository.EmpresaRepository,
	rolRepo repository.RolRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewEmpresaRepository(tx), NewRolRepository(tx), NewUsuarioRepository(tx))
	})
}
