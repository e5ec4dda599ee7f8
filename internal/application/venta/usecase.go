// Package venta orquesta el flujo de ventas: registro con comprobante, edición,
// pagos, anulación, entregas y documentos. Las reglas de estados viven en
// internal/domain/venta; aquí solo se cargan datos y se delimitan transacciones.
package venta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	reglas "github.com/brickapp/brickapp-api/internal/domain/venta"
)

// UseCase casos de uso de la venta.
type UseCase struct {
	ventaRepo    repository.VentaRepository
	entregaRepo  repository.EntregaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	tx           TxRunner
	now          func() time.Time
}

// NewUseCase construye el caso de uso inyectando repositorios de lectura y el runner transaccional.
func NewUseCase(
	ventaRepo repository.VentaRepository,
	entregaRepo repository.EntregaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	tx TxRunner,
) *UseCase {
	return &UseCase{
		ventaRepo:    ventaRepo,
		entregaRepo:  entregaRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// Create registra la venta con su comprobante, detalles y servicios en una sola transacción.
// El correlativo del comprobante se toma con la fila de numeración bloqueada.
func (uc *UseCase) Create(ctx context.Context, empresaID, usuarioID string, in dto.CreateVentaRequest) (*dto.VentaResponse, error) {
	normalizarVenta(&in.TipoVenta, &in.Observaciones)
	in.TipoComprobante = strings.ToUpper(strings.TrimSpace(in.TipoComprobante))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cliente, err := uc.resolverCliente(ctx, empresaID, in.ClienteID, in.TipoComprobante)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	fecha, err := dto.ParseFecha(in.FechaVenta, now)
	if err != nil {
		return nil, err
	}

	v := &entity.Venta{
		ID:            uuid.New().String(),
		EmpresaID:     empresaID,
		ClienteID:     cliente.ID,
		ClienteNombre: cliente.Nombre,
		FechaVenta:    fecha,
		TipoVenta:     in.TipoVenta,
		EstadoEntrega: entity.EntregaPendiente,
		EstadoVenta:   entity.VentaActiva,
		Observaciones: in.Observaciones,
		UsuarioID:     usuarioID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	detalles, err := uc.armarDetalles(ctx, empresaID, v.ID, in.Detalles, nil)
	if err != nil {
		return nil, err
	}
	servicios, err := armarServicios(v.ID, in.Servicios)
	if err != nil {
		return nil, err
	}
	v.Subtotal, v.TotalServicios, v.Total = reglas.Totales(detalles, servicios)
	if v.Adelanto, err = adelantoInicial(v.TipoVenta, v.Total, in.Adelanto); err != nil {
		return nil, err
	}
	if err := reglas.AplicarPago(v); err != nil {
		return nil, err
	}

	opGravada, igv := reglas.DesgloseIGV(in.TipoComprobante, v.Total)
	comp := &entity.ComprobanteVenta{
		ID:           uuid.New().String(),
		VentaID:      v.ID,
		Tipo:         in.TipoComprobante,
		FechaEmision: now,
		OpGravada:    opGravada,
		IGV:          igv,
		Total:        v.Total,
	}

	err = uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, numeracionRepo repository.NumeracionRepository, _ repository.EntregaRepository) error {
		serie, numero, err := numeracionRepo.Siguiente(ctx, empresaID, comp.Tipo)
		if err != nil {
			return err
		}
		comp.Serie, comp.Numero = serie, numero
		if err := ventaRepo.Create(ctx, v); err != nil {
			return err
		}
		if err := ventaRepo.CreateComprobante(ctx, comp); err != nil {
			return err
		}
		for _, d := range detalles {
			if err := ventaRepo.CreateDetalle(ctx, d); err != nil {
				return err
			}
		}
		for _, s := range servicios {
			if err := ventaRepo.CreateServicio(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toVentaResponse(v)
	out.Comprobante = toComprobanteResponse(comp)
	out.Detalles = toDetallesResponse(detalles, nil)
	out.Servicios = toServiciosResponse(servicios)
	return out, nil
}

// Update reemplaza detalles y servicios de una venta activa y recalcula totales,
// comprobante y estados. Una línea no puede quedar por debajo de lo entregado ni
// eliminarse si tiene entregas.
func (uc *UseCase) Update(ctx context.Context, empresaID, id string, in dto.UpdateVentaRequest) (*dto.VentaResponse, error) {
	normalizarVenta(&in.TipoVenta, &in.Observaciones)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	actual, err := uc.ventaRepo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if actual == nil {
		return nil, notFound("venta")
	}
	comp, err := uc.ventaRepo.GetComprobante(ctx, actual.ID)
	if err != nil {
		return nil, err
	}
	tipoComprobante := ""
	if comp != nil {
		tipoComprobante = comp.Tipo
	}
	cliente, err := uc.resolverCliente(ctx, empresaID, in.ClienteID, tipoComprobante)
	if err != nil {
		return nil, err
	}
	fecha, err := dto.ParseFecha(in.FechaVenta, actual.FechaVenta)
	if err != nil {
		return nil, err
	}

	var (
		v         *entity.Venta
		detalles  []*entity.DetalleVenta
		servicios []*entity.ServicioVenta
		entregado map[string]decimal.Decimal
	)
	err = uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, _ repository.NumeracionRepository, entregaRepo repository.EntregaRepository) error {
		var err error
		if v, err = ventaRepo.GetByIDForUpdate(ctx, empresaID, id); err != nil {
			return err
		}
		if v == nil {
			return notFound("venta")
		}
		if v.EstadoVenta != entity.VentaActiva {
			return fmt.Errorf("%w: la venta está %s y no puede editarse", domain.ErrConflict, v.EstadoVenta)
		}
		existentes, err := ventaRepo.ListDetalles(ctx, v.ID)
		if err != nil {
			return err
		}
		if entregado, err = entregaRepo.EntregadoPorDetalle(ctx, v.ID); err != nil {
			return err
		}
		porID := make(map[string]*entity.DetalleVenta, len(existentes))
		for _, d := range existentes {
			porID[d.ID] = d
		}
		if detalles, err = uc.armarDetalles(ctx, empresaID, v.ID, in.Detalles, porID); err != nil {
			return err
		}
		if servicios, err = armarServicios(v.ID, in.Servicios); err != nil {
			return err
		}

		enviados := make(map[string]bool, len(detalles))
		for _, d := range detalles {
			if prev, ok := porID[d.ID]; ok {
				enviados[d.ID] = true
				if err := reglas.ValidarCantidadEditada(d.ID, d.Cantidad, entregado[d.ID]); err != nil {
					return err
				}
				if prev.ProductoID != d.ProductoID && entregado[d.ID].IsPositive() {
					return fmt.Errorf("%w: el detalle %s tiene entregas y no puede cambiar de producto", domain.ErrConflict, d.ID)
				}
			}
		}
		for _, prev := range existentes {
			if !enviados[prev.ID] && entregado[prev.ID].IsPositive() {
				return fmt.Errorf("%w: el detalle %s (%s) tiene entregas y no puede eliminarse",
					domain.ErrConflict, prev.ID, prev.ProductoNombre)
			}
		}

		v.ClienteID, v.ClienteNombre = cliente.ID, cliente.Nombre
		v.FechaVenta = fecha
		v.Observaciones = in.Observaciones
		if in.TipoVenta != "" {
			v.TipoVenta = in.TipoVenta
		}
		v.Subtotal, v.TotalServicios, v.Total = reglas.Totales(detalles, servicios)
		if v.Adelanto, err = adelantoEditado(v.TipoVenta, v.Total, v.Adelanto, in.Adelanto); err != nil {
			return err
		}
		if err := reglas.AplicarPago(v); err != nil {
			return err
		}
		reglas.AplicarEntregas(v, lineas(detalles, entregado))
		v.UpdatedAt = uc.now()

		for _, prev := range existentes {
			if !enviados[prev.ID] {
				if err := ventaRepo.DeleteDetalle(ctx, v.ID, prev.ID); err != nil {
					return err
				}
			}
		}
		for _, d := range detalles {
			if enviados[d.ID] {
				err = ventaRepo.UpdateDetalle(ctx, d)
			} else {
				err = ventaRepo.CreateDetalle(ctx, d)
			}
			if err != nil {
				return err
			}
		}
		if err := ventaRepo.DeleteServicios(ctx, v.ID); err != nil {
			return err
		}
		for _, s := range servicios {
			if err := ventaRepo.CreateServicio(ctx, s); err != nil {
				return err
			}
		}
		if comp != nil {
			comp.OpGravada, comp.IGV = reglas.DesgloseIGV(comp.Tipo, v.Total)
			comp.Total = v.Total
			if err := ventaRepo.UpdateComprobante(ctx, comp); err != nil {
				return err
			}
		}
		return ventaRepo.Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	out := toVentaResponse(v)
	out.Comprobante = toComprobanteResponse(comp)
	out.Detalles = toDetallesResponse(detalles, entregado)
	out.Servicios = toServiciosResponse(servicios)
	return out, nil
}

// RegistrarPago suma un pago al adelanto. El monto debe ser positivo y no superar el saldo.
func (uc *UseCase) RegistrarPago(ctx context.Context, empresaID, id string, in dto.PagoRequest) (*dto.VentaResponse, error) {
	if !in.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor a cero", domain.ErrInvalidInput)
	}
	var v *entity.Venta
	err := uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, _ repository.NumeracionRepository, _ repository.EntregaRepository) error {
		var err error
		if v, err = ventaRepo.GetByIDForUpdate(ctx, empresaID, id); err != nil {
			return err
		}
		if v == nil {
			return notFound("venta")
		}
		if v.EstadoVenta == entity.VentaAnulada {
			return fmt.Errorf("%w: la venta está anulada", domain.ErrConflict)
		}
		if in.Monto.GreaterThan(v.SaldoPendiente) {
			return fmt.Errorf("%w: el pago (%s) supera el saldo pendiente (%s)",
				domain.ErrInvalidInput, in.Monto.StringFixed(2), v.SaldoPendiente.StringFixed(2))
		}
		v.Adelanto = v.Adelanto.Add(in.Monto.Round(2))
		if err := reglas.AplicarPago(v); err != nil {
			return err
		}
		v.UpdatedAt = uc.now()
		return ventaRepo.Update(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toVentaResponse(v), nil
}

// Anular marca la venta como ANULADA. No se anulan ventas con entregas.
func (uc *UseCase) Anular(ctx context.Context, empresaID, id string) error {
	return uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, _ repository.NumeracionRepository, entregaRepo repository.EntregaRepository) error {
		v, err := ventaRepo.GetByIDForUpdate(ctx, empresaID, id)
		if err != nil {
			return err
		}
		if v == nil {
			return notFound("venta")
		}
		if v.EstadoVenta == entity.VentaAnulada {
			return fmt.Errorf("%w: la venta ya está anulada", domain.ErrConflict)
		}
		entregas, err := entregaRepo.ListByVenta(ctx, v.ID)
		if err != nil {
			return err
		}
		if len(entregas) > 0 {
			return fmt.Errorf("%w: la venta tiene %d entrega(s); reviértalas antes de anular", domain.ErrConflict, len(entregas))
		}
		v.EstadoVenta = entity.VentaAnulada
		v.UpdatedAt = uc.now()
		return ventaRepo.Update(ctx, v)
	})
}

// GetByID devuelve la venta con detalles (y lo entregado por línea), servicios, comprobante y entregas.
func (uc *UseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.VentaResponse, error) {
	v, err := uc.ventaRepo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notFound("venta")
	}
	detalles, err := uc.ventaRepo.ListDetalles(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	entregado, err := uc.entregaRepo.EntregadoPorDetalle(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	servicios, err := uc.ventaRepo.ListServicios(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	comp, err := uc.ventaRepo.GetComprobante(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	entregas, err := uc.entregaRepo.ListByVenta(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	out := toVentaResponse(v)
	out.Comprobante = toComprobanteResponse(comp)
	out.Detalles = toDetallesResponse(detalles, entregado)
	out.Servicios = toServiciosResponse(servicios)
	for _, e := range entregas {
		out.Entregas = append(out.Entregas, toEntregaResponse(e))
	}
	return out, nil
}

// List lista ventas (solo cabecera) con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, empresaID string, in dto.VentaFilterRequest) (*dto.VentaListResponse, error) {
	f, err := filtro(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.ventaRepo.List(ctx, empresaID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVentaResponse(v))
	}
	return &dto.VentaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// ---- helpers ----

func notFound(recurso string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, recurso)
}

func normalizarVenta(tipoVenta, observaciones *string) {
	*tipoVenta = strings.ToUpper(strings.TrimSpace(*tipoVenta))
	*observaciones = strings.TrimSpace(*observaciones)
}

// resolverCliente exige que el cliente sea de la empresa y, para facturas, que tenga RUC.
func (uc *UseCase) resolverCliente(ctx context.Context, empresaID, clienteID, tipoComprobante string) (*entity.Cliente, error) {
	c, err := uc.clienteRepo.GetByID(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidInput, clienteID)
	}
	if tipoComprobante == entity.ComprobanteFactura && c.TipoDocumento != "RUC" {
		return nil, fmt.Errorf("%w: la factura requiere un cliente con RUC", domain.ErrInvalidInput)
	}
	return c, nil
}

// armarDetalles resuelve productos y precios. Con existentes != nil, un id enviado
// debe pertenecer a la venta; sin id se crea una línea nueva.
func (uc *UseCase) armarDetalles(ctx context.Context, empresaID, ventaID string, items []dto.DetalleVentaRequest, existentes map[string]*entity.DetalleVenta) ([]*entity.DetalleVenta, error) {
	productos := make(map[string]*entity.Producto)
	vistos := make(map[string]bool)
	out := make([]*entity.DetalleVenta, 0, len(items))
	for i, it := range items {
		if err := reglas.ValidarCantidad(it.Cantidad); err != nil {
			return nil, fmt.Errorf("detalles[%d]: %w", i, err)
		}
		if it.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: detalles[%d]: el precio no puede ser negativo", domain.ErrInvalidInput, i)
		}
		p, ok := productos[it.ProductoID]
		if !ok {
			var err error
			if p, err = uc.productoRepo.GetByID(ctx, empresaID, it.ProductoID); err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("%w: detalles[%d]: el producto %s no existe", domain.ErrInvalidInput, i, it.ProductoID)
			}
			productos[it.ProductoID] = p
		}
		id := it.ID
		if id != "" {
			if _, ok := existentes[id]; !ok {
				return nil, fmt.Errorf("%w: detalles[%d]: el detalle %s no pertenece a la venta", domain.ErrInvalidInput, i, id)
			}
			if vistos[id] {
				return nil, fmt.Errorf("%w: detalles[%d]: el detalle %s está repetido", domain.ErrInvalidInput, i, id)
			}
			vistos[id] = true
		} else {
			if !p.Activo {
				return nil, fmt.Errorf("%w: detalles[%d]: el producto %q está inactivo", domain.ErrInvalidInput, i, p.Nombre)
			}
			id = uuid.New().String()
		}
		precio := it.PrecioUnitario
		if precio.IsZero() {
			precio = p.PrecioUnitario
		}
		out = append(out, &entity.DetalleVenta{
			ID:             id,
			VentaID:        ventaID,
			ProductoID:     p.ID,
			ProductoNombre: p.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: precio.Round(2),
		})
	}
	return out, nil
}

func armarServicios(ventaID string, items []dto.ServicioVentaRequest) ([]*entity.ServicioVenta, error) {
	out := make([]*entity.ServicioVenta, 0, len(items))
	for i, it := range items {
		if it.Monto.IsNegative() {
			return nil, fmt.Errorf("%w: servicios[%d]: el monto no puede ser negativo", domain.ErrInvalidInput, i)
		}
		out = append(out, &entity.ServicioVenta{
			ID:          uuid.New().String(),
			VentaID:     ventaID,
			Tipo:        strings.ToUpper(it.Tipo),
			Descripcion: strings.TrimSpace(it.Descripcion),
			Monto:       it.Monto.Round(2),
		})
	}
	return out, nil
}

// adelantoInicial: al contado sin adelanto se paga todo; al contado con un adelanto distinto del total es inválido.
func adelantoInicial(tipoVenta string, total decimal.Decimal, adelanto *decimal.Decimal) (decimal.Decimal, error) {
	if adelanto == nil {
		if tipoVenta == entity.TipoVentaContado {
			return total, nil
		}
		return decimal.Zero, nil
	}
	a := adelanto.Round(2)
	if tipoVenta == entity.TipoVentaContado && !a.Equal(total) {
		return decimal.Zero, fmt.Errorf("%w: una venta al contado debe pagarse completa (total %s)",
			domain.ErrInvalidInput, total.StringFixed(2))
	}
	return a, nil
}

// adelantoEditado conserva lo pagado si no se envía adelanto, salvo al contado donde sigue al total.
func adelantoEditado(tipoVenta string, total, actual decimal.Decimal, adelanto *decimal.Decimal) (decimal.Decimal, error) {
	if adelanto == nil {
		if tipoVenta == entity.TipoVentaContado {
			return total, nil
		}
		return actual, nil
	}
	return adelantoInicial(tipoVenta, total, adelanto)
}

func lineas(detalles []*entity.DetalleVenta, entregado map[string]decimal.Decimal) []reglas.Linea {
	out := make([]reglas.Linea, 0, len(detalles))
	for _, d := range detalles {
		out = append(out, reglas.Linea{DetalleID: d.ID, Vendido: d.Cantidad, Entregado: entregado[d.ID]})
	}
	return out
}

// filtro traduce los query params. "hasta" con solo fecha incluye todo ese día.
func filtro(in dto.VentaFilterRequest) (repository.VentaFilter, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.Normalize()
	f := repository.VentaFilter{
		EstadoVenta:   strings.ToUpper(strings.TrimSpace(in.EstadoVenta)),
		EstadoPago:    strings.ToUpper(strings.TrimSpace(in.EstadoPago)),
		EstadoEntrega: strings.ToUpper(strings.TrimSpace(in.EstadoEntrega)),
		ClienteID:     strings.TrimSpace(in.ClienteID),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if f.ClienteID != "" {
		if _, err := uuid.Parse(f.ClienteID); err != nil {
			return f, fmt.Errorf("%w: id_cliente no es un UUID", domain.ErrInvalidInput)
		}
	}
	var err error
	if f.Desde, err = dto.ParseFechaOpcional(in.Desde); err != nil {
		return f, err
	}
	if f.Hasta, err = dto.ParseFechaOpcional(in.Hasta); err != nil {
		return f, err
	}
	if f.Hasta != nil && len(strings.TrimSpace(in.Hasta)) == len("2006-01-02") {
		fin := f.Hasta.Add(24*time.Hour - time.Nanosecond)
		f.Hasta = &fin
	}
	if f.Desde != nil && f.Hasta != nil && f.Hasta.Before(*f.Desde) {
		return f, fmt.Errorf("%w: el rango de fechas es inválido", domain.ErrInvalidInput)
	}
	return f, nil
}
