package venta

import (
	"context"
	"fmt"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// MaxFilasExport tope de filas de la exportación a Excel.
const MaxFilasExport = 5000

// DocumentoUseCase genera el PDF y el XML del comprobante y la exportación de ventas.
type DocumentoUseCase struct {
	ventaRepo    repository.VentaRepository
	empresaRepo  repository.EmpresaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	pdf          ComprobantePDFGenerator
	xml          ComprobanteXMLBuilder
	report       VentasReportWriter
}

// NewDocumentoUseCase construye el caso de uso inyectando generadores de documentos.
func NewDocumentoUseCase(
	ventaRepo repository.VentaRepository,
	empresaRepo repository.EmpresaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	pdf ComprobantePDFGenerator,
	xml ComprobanteXMLBuilder,
	report VentasReportWriter,
) *DocumentoUseCase {
	return &DocumentoUseCase{
		ventaRepo:    ventaRepo,
		empresaRepo:  empresaRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		pdf:          pdf,
		xml:          xml,
		report:       report,
	}
}

// ComprobantePDF devuelve el PDF y el nombre de archivo sugerido.
func (uc *DocumentoUseCase) ComprobantePDF(ctx context.Context, empresaID, ventaID string) ([]byte, string, error) {
	doc, err := uc.cargar(ctx, empresaID, ventaID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateComprobantePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, doc.Comprobante.NumeroCompleto() + ".pdf", nil
}

// ComprobanteXML devuelve la representación UBL 2.1 sin firmar.
func (uc *DocumentoUseCase) ComprobanteXML(ctx context.Context, empresaID, ventaID string) ([]byte, string, error) {
	doc, err := uc.cargar(ctx, empresaID, ventaID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.BuildComprobanteXML(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return b, doc.Empresa.RUC + "-" + doc.Comprobante.NumeroCompleto() + ".xml", nil
}

// ExportarVentas genera el XLSX del listado filtrado (sin paginar, hasta MaxFilasExport filas).
func (uc *DocumentoUseCase) ExportarVentas(ctx context.Context, empresaID string, in dto.VentaFilterRequest) ([]byte, error) {
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, notFound("empresa")
	}
	in.Limit, in.Offset = dto.MaxLimit, 0
	f, err := filtro(in)
	if err != nil {
		return nil, err
	}
	var filas []dto.VentaResponse
	for len(filas) < MaxFilasExport {
		list, err := uc.ventaRepo.ListConComprobante(ctx, empresaID, f)
		if err != nil {
			return nil, err
		}
		for _, v := range list {
			r := toVentaResponse(v)
			r.Comprobante = toComprobanteResponse(v.Comprobante)
			filas = append(filas, *r)
		}
		if len(list) < f.Limit {
			break
		}
		f.Offset += f.Limit
	}
	if len(filas) > MaxFilasExport {
		filas = filas[:MaxFilasExport]
	}
	return uc.report.WriteVentas(empresa, filas)
}

func (uc *DocumentoUseCase) cargar(ctx context.Context, empresaID, ventaID string) (*Documento, error) {
	v, err := uc.ventaRepo.GetByID(ctx, empresaID, ventaID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notFound("venta")
	}
	comp, err := uc.ventaRepo.GetComprobante(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, fmt.Errorf("%w: la venta no tiene comprobante", domain.ErrNotFound)
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener empresa: %w", err)
	}
	if empresa == nil {
		return nil, notFound("empresa")
	}
	cliente, err := uc.clienteRepo.GetByID(ctx, empresaID, v.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener cliente: %w", err)
	}
	if cliente == nil {
		return nil, notFound("cliente")
	}
	detalles, err := uc.ventaRepo.ListDetalles(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	servicios, err := uc.ventaRepo.ListServicios(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	doc := &Documento{Empresa: empresa, Cliente: cliente, Venta: v, Comprobante: comp, Servicios: servicios}
	unidades := make(map[string]string)
	for _, d := range detalles {
		unidad, ok := unidades[d.ProductoID]
		if !ok {
			p, err := uc.productoRepo.GetByID(ctx, empresaID, d.ProductoID)
			if err != nil {
				return nil, fmt.Errorf("documento: obtener producto: %w", err)
			}
			if p != nil {
				unidad = p.UnidadMedida
			}
			unidades[d.ProductoID] = unidad
		}
		doc.Detalles = append(doc.Detalles, DetalleDocumento{DetalleVenta: *d, UnidadMedida: unidad})
	}
	return doc, nil
}
