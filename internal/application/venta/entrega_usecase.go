package venta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	reglas "github.com/brickapp/brickapp-api/internal/domain/venta"
)

// EntregaUseCase registra y revierte entregas de una venta.
type EntregaUseCase struct {
	ventaRepo   repository.VentaRepository
	entregaRepo repository.EntregaRepository
	tx          TxRunner
	now         func() time.Time
}

// NewEntregaUseCase construye el caso de uso.
func NewEntregaUseCase(ventaRepo repository.VentaRepository, entregaRepo repository.EntregaRepository, tx TxRunner) *EntregaUseCase {
	return &EntregaUseCase{ventaRepo: ventaRepo, entregaRepo: entregaRepo, tx: tx, now: time.Now}
}

// Registrar crea la entrega con la venta bloqueada: valida que lo entregado más lo
// solicitado no supere lo vendido por línea y recalcula los estados de la venta.
func (uc *EntregaUseCase) Registrar(ctx context.Context, empresaID, usuarioID string, in dto.CreateEntregaRequest) (*dto.EntregaRegistradaResponse, error) {
	in.Observaciones = strings.TrimSpace(in.Observaciones)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	fecha, err := dto.ParseFecha(in.FechaEntrega, now)
	if err != nil {
		return nil, err
	}
	items := make([]reglas.Solicitud, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		items = append(items, reglas.Solicitud{DetalleID: d.DetalleVentaID, Cantidad: d.Cantidad})
	}
	solicitado, err := reglas.SumarSolicitado(items)
	if err != nil {
		return nil, err
	}

	e := &entity.EntregaVenta{
		ID:            uuid.New().String(),
		VentaID:       in.VentaID,
		FechaEntrega:  fecha,
		Observaciones: in.Observaciones,
		UsuarioID:     usuarioID,
		CreatedAt:     now,
	}
	var v *entity.Venta
	err = uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, _ repository.NumeracionRepository, entregaRepo repository.EntregaRepository) error {
		var err error
		if v, err = ventaRepo.GetByIDForUpdate(ctx, empresaID, in.VentaID); err != nil {
			return err
		}
		if v == nil {
			return notFound("venta")
		}
		if v.EstadoVenta == entity.VentaAnulada {
			return fmt.Errorf("%w: la venta está anulada", domain.ErrConflict)
		}
		detalles, err := ventaRepo.ListDetalles(ctx, v.ID)
		if err != nil {
			return err
		}
		entregado, err := entregaRepo.EntregadoPorDetalle(ctx, v.ID)
		if err != nil {
			return err
		}
		ls := lineas(detalles, entregado)
		if err := reglas.ValidarEntrega(ls, solicitado); err != nil {
			return err
		}

		nombres := make(map[string]string, len(detalles))
		for _, d := range detalles {
			nombres[d.ID] = d.ProductoNombre
		}
		if err := entregaRepo.Create(ctx, e); err != nil {
			return err
		}
		// Orden de la venta para que la respuesta sea estable.
		for _, d := range detalles {
			cant, ok := solicitado[d.ID]
			if !ok {
				continue
			}
			de := entity.DetalleEntregaVenta{
				ID:             uuid.New().String(),
				EntregaID:      e.ID,
				DetalleVentaID: d.ID,
				ProductoNombre: nombres[d.ID],
				Cantidad:       cant,
			}
			if err := entregaRepo.CreateDetalle(ctx, &de); err != nil {
				return err
			}
			e.Detalles = append(e.Detalles, de)
			entregado[d.ID] = entregado[d.ID].Add(cant)
		}

		reglas.AplicarEntregas(v, lineas(detalles, entregado))
		v.UpdatedAt = now
		return ventaRepo.Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return &dto.EntregaRegistradaResponse{
		Entrega:       toEntregaResponse(e),
		EstadoEntrega: v.EstadoEntrega,
		EstadoVenta:   v.EstadoVenta,
	}, nil
}

// GetByID obtiene una entrega de la empresa.
func (uc *EntregaUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.EntregaResponse, error) {
	e, err := uc.entregaRepo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("entrega")
	}
	out := toEntregaResponse(e)
	return &out, nil
}

// ListByVenta lista las entregas de una venta.
func (uc *EntregaUseCase) ListByVenta(ctx context.Context, empresaID, ventaID string) ([]dto.EntregaResponse, error) {
	if _, err := uuid.Parse(ventaID); err != nil {
		return nil, fmt.Errorf("%w: id_venta es obligatorio y debe ser un UUID", domain.ErrInvalidInput)
	}
	v, err := uc.ventaRepo.GetByID(ctx, empresaID, ventaID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notFound("venta")
	}
	list, err := uc.entregaRepo.ListByVenta(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntregaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntregaResponse(e))
	}
	return out, nil
}

// Delete revierte una entrega y recalcula los estados de la venta.
func (uc *EntregaUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, _ repository.NumeracionRepository, entregaRepo repository.EntregaRepository) error {
		e, err := entregaRepo.GetByID(ctx, empresaID, id)
		if err != nil {
			return err
		}
		if e == nil {
			return notFound("entrega")
		}
		v, err := ventaRepo.GetByIDForUpdate(ctx, empresaID, e.VentaID)
		if err != nil {
			return err
		}
		if v == nil {
			return notFound("venta")
		}
		if err := entregaRepo.Delete(ctx, e.ID); err != nil {
			return err
		}
		detalles, err := ventaRepo.ListDetalles(ctx, v.ID)
		if err != nil {
			return err
		}
		entregado, err := entregaRepo.EntregadoPorDetalle(ctx, v.ID)
		if err != nil {
			return err
		}
		reglas.AplicarEntregas(v, lineas(detalles, entregado))
		v.UpdatedAt = uc.now()
		return ventaRepo.Update(ctx, v)
	})
}
