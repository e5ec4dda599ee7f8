package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/infrastructure/metrics"
)

const (
	mimePDF  = "application/pdf"
	mimeXML  = "application/xml"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// VentaHandler ventas, pagos, anulación y documentos del comprobante.
type VentaHandler struct {
	uc   *venta.UseCase
	docs *venta.DocumentoUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *venta.UseCase, docs *venta.DocumentoUseCase) *VentaHandler {
	return &VentaHandler{uc: uc, docs: docs}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Calcula totales, saldo y estado de pago, y emite el comprobante con la siguiente numeración de la serie.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "Cliente, detalle, servicios y comprobante"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetEmpresaID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	metrics.VentaRegistrada(in.TipoComprobante, out.TipoVenta)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Description  Incluye detalle con cantidades entregadas, servicios, comprobante y entregas.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        estado_venta    query  string  false  "ACTIVA, CERRADA o ANULADA"
// @Param        estado_pago     query  string  false  "PENDIENTE, PARCIAL o PAGADO"
// @Param        estado_entrega  query  string  false  "PENDIENTE, PARCIAL o ENTREGADO"
// @Param        id_cliente      query  string  false  "Cliente"
// @Param        desde           query  string  false  "Fecha inicial (AAAA-MM-DD)"
// @Param        hasta           query  string  false  "Fecha final (AAAA-MM-DD)"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200             {object}  dto.VentaListResponse
// @Failure      400             {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	var in dto.VentaFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar venta activa
// @Description  Detalles y servicios reemplazan a los actuales; las líneas con entregas no pueden quitarse ni quedar por debajo de lo entregado.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateVentaRequest  true  "Venta completa"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *VentaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegistrarPago godoc
// @Summary      Registrar pago
// @Description  El monto no puede superar el saldo pendiente. Con saldo cero y entrega completa la venta se cierra.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.PagoRequest  true  "Monto"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pagos [post]
func (h *VentaHandler) RegistrarPago(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegistrarPago(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular venta
// @Description  Solo ventas sin entregas registradas.
// @Tags         ventas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *VentaHandler) Anular(c *fiber.Ctx) error {
	if err := h.uc.Anular(c.UserContext(), GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	metrics.VentaAnulada()
	return c.SendStatus(fiber.StatusNoContent)
}

// ComprobantePDF godoc
// @Summary      Comprobante en PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comprobante.pdf [get]
func (h *VentaHandler) ComprobantePDF(c *fiber.Ctx) error {
	b, nombre, err := h.docs.ComprobantePDF(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendArchivo(c, mimePDF, nombre, b, "inline")
}

// ComprobanteXML godoc
// @Summary      Comprobante en XML UBL 2.1 sin firmar
// @Description  Solo boletas y facturas; la nota de venta responde 400.
// @Tags         ventas
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comprobante.xml [get]
func (h *VentaHandler) ComprobanteXML(c *fiber.Ctx) error {
	b, nombre, err := h.docs.ComprobanteXML(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendArchivo(c, mimeXML, nombre, b, "attachment")
}

// Exportar godoc
// @Summary      Exportar ventas a Excel
// @Description  Acepta los mismos filtros que el listado.
// @Tags         ventas
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        estado_venta  query  string  false  "Estado de la venta"
// @Param        desde         query  string  false  "Fecha inicial (AAAA-MM-DD)"
// @Param        hasta         query  string  false  "Fecha final (AAAA-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/ventas/export.xlsx [get]
func (h *VentaHandler) Exportar(c *fiber.Ctx) error {
	var in dto.VentaFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	b, err := h.docs.ExportarVentas(c.UserContext(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendArchivo(c, mimeXLSX, "ventas.xlsx", b, "attachment")
}

func sendArchivo(c *fiber.Ctx, mime, nombre string, b []byte, disposicion string) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposicion, nombre))
	return c.Send(b)
}

// EntregaHandler entregas de mercadería contra una venta.
type EntregaHandler struct {
	uc *venta.EntregaUseCase
}

// NewEntregaHandler construye el handler.
func NewEntregaHandler(uc *venta.EntregaUseCase) *EntregaHandler {
	return &EntregaHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar entrega
// @Description  Ninguna línea puede superar lo vendido menos lo ya entregado (EXCEEDS_ORDERED).
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntregaRequest  true  "Venta y cantidades"
// @Success      201   {object}  dto.EntregaRegistradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entrega_venta [post]
func (h *EntregaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.CreateEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Registrar(c.UserContext(), GetEmpresaID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	metrics.EntregaRegistrada(out.EstadoEntrega)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByVenta godoc
// @Summary      Entregas de una venta
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id_venta  query  string  true  "ID de la venta"
// @Success      200       {array}  dto.EntregaResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/entrega_venta [get]
func (h *EntregaHandler) ListByVenta(c *fiber.Ctx) error {
	ventaID := c.Query("id_venta")
	if ventaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id_venta es requerido"})
	}
	out, err := h.uc.ListByVenta(c.UserContext(), GetEmpresaID(c), ventaID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/entrega_venta/:id
func (h *EntregaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrega
// @Description  Recalcula el estado de entrega de la venta.
// @Tags         entregas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/entrega_venta/{id} [delete]
func (h *EntregaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
