package venta

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción que incluye ventas, numeración y entregas.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		numeracionRepo repository.NumeracionRepository,
		entregaRepo repository.EntregaRepository,
	) error) error
}

// DetalleDocumento línea del comprobante con el nombre del producto resuelto.
type DetalleDocumento struct {
	entity.DetalleVenta
	UnidadMedida string
}

// Documento datos completos para la representación impresa o XML del comprobante.
type Documento struct {
	Empresa     *entity.Empresa
	Cliente     *entity.Cliente
	Venta       *entity.Venta
	Comprobante *entity.ComprobanteVenta
	Detalles    []DetalleDocumento
	Servicios   []*entity.ServicioVenta
}

// ComprobantePDFGenerator genera el PDF del comprobante.
type ComprobantePDFGenerator interface {
	GenerateComprobantePDF(ctx context.Context, doc *Documento) ([]byte, error)
}

// ComprobanteXMLBuilder arma la representación UBL 2.1 (sin firma) del comprobante.
type ComprobanteXMLBuilder interface {
	BuildComprobanteXML(doc *Documento) ([]byte, error)
}

// VentasReportWriter exporta un listado de ventas a hoja de cálculo.
type VentasReportWriter interface {
	WriteVentas(empresa *entity.Empresa, ventas []dto.VentaResponse) ([]byte, error)
}
