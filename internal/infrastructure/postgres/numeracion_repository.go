package postgres

import (
	"context"
	"fmt"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

var _ repository.NumeracionRepository = (*NumeracionRepo)(nil)

// NumeracionRepo correlativos de comprobante. Debe usarse dentro de una transacción.
type NumeracionRepo struct {
	q Querier
}

// NewNumeracionRepository construye el adaptador.
func NewNumeracionRepository(q Querier) *NumeracionRepo {
	return &NumeracionRepo{q: q}
}

// Siguiente reserva el próximo número del tipo. La fila queda bloqueada hasta el commit,
// así dos ventas concurrentes no obtienen el mismo correlativo.
func (r *NumeracionRepo) Siguiente(ctx context.Context, empresaID, tipo string) (string, int64, error) {
	serieDefecto, ok := entity.SerieDefecto[tipo]
	if !ok {
		return "", 0, fmt.Errorf("%w: tipo de comprobante %q", domain.ErrInvalidInput, tipo)
	}
	if _, err := r.q.Exec(ctx, `
		INSERT INTO numeracion_comprobante (id_empresa, tipo, serie, ultimo_numero)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (id_empresa, tipo) DO NOTHING`, empresaID, tipo, serieDefecto); err != nil {
		return "", 0, fmt.Errorf("init numeracion: %w", err)
	}

	var (
		serie  string
		numero int64
	)
	err := r.q.QueryRow(ctx, `
		SELECT serie, ultimo_numero FROM numeracion_comprobante
		WHERE id_empresa = $1 AND tipo = $2
		FOR UPDATE`, empresaID, tipo).Scan(&serie, &numero)
	if err != nil {
		return "", 0, fmt.Errorf("lock numeracion: %w", err)
	}
	numero++
	if _, err := r.q.Exec(ctx, `
		UPDATE numeracion_comprobante SET ultimo_numero = $3 WHERE id_empresa = $1 AND tipo = $2`,
		empresaID, tipo, numero); err != nil {
		return "", 0, fmt.Errorf("update numeracion: %w", err)
	}
	return serie, numero, nil
}
