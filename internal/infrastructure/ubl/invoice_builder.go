// Package ubl arma el XML UBL 2.1 (formato SUNAT) de boletas y facturas.
// El documento sale sin firma digital; la firma y el envío a SUNAT o a un OSE
// quedan fuera de esta aplicación.
package ubl

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	reglas "github.com/brickapp/brickapp-api/internal/domain/venta"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NsDs      = "http://www.w3.org/2000/09/xmldsig#"
)

const (
	customizationID = "2.0"
	tipoOperacion   = "0101" // catálogo 51: venta interna
	agencia         = "PE:SUNAT"
	uriCatalogo     = "urn:pe:gob:sunat:cpe:see:gem:catalogos:"
)

// InvoiceBuilder implementa venta.ComprobanteXMLBuilder.
type InvoiceBuilder struct{}

var _ venta.ComprobanteXMLBuilder = (*InvoiceBuilder)(nil)

// NewInvoiceBuilder crea el builder.
func NewInvoiceBuilder() *InvoiceBuilder { return &InvoiceBuilder{} }

// BuildComprobanteXML genera el Invoice. La nota de venta no tiene representación UBL.
func (b *InvoiceBuilder) BuildComprobanteXML(doc *venta.Documento) ([]byte, error) {
	if doc == nil || doc.Empresa == nil || doc.Cliente == nil || doc.Comprobante == nil {
		return nil, fmt.Errorf("ubl: faltan empresa, cliente o comprobante")
	}
	comp := doc.Comprobante
	if comp.Tipo == entity.ComprobanteNotaVenta {
		return nil, fmt.Errorf("%w: la nota de venta no tiene XML electrónico", domain.ErrInvalidInput)
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	inv := x.CreateElement("Invoice")
	inv.CreateAttr("xmlns", NsInvoice)
	inv.CreateAttr("xmlns:cac", NsCac)
	inv.CreateAttr("xmlns:cbc", NsCbc)
	inv.CreateAttr("xmlns:ds", NsDs)
	inv.CreateAttr("xmlns:ext", NsExt)

	// Contenedor vacío donde el firmador inserta ds:Signature.
	inv.CreateElement("ext:UBLExtensions").
		CreateElement("ext:UBLExtension").
		CreateElement("ext:ExtensionContent")

	cbc(inv, "UBLVersionID", "2.1")
	cbc(inv, "CustomizationID", customizationID)
	cbc(inv, "ID", comp.NumeroCompleto())
	cbc(inv, "IssueDate", comp.FechaEmision.Format("2006-01-02"))
	cbc(inv, "IssueTime", comp.FechaEmision.Format("15:04:05"))
	tc := cbc(inv, "InvoiceTypeCode", peru.CodigoTipoComprobante[comp.Tipo])
	tc.CreateAttr("listID", tipoOperacion)
	tc.CreateAttr("listAgencyName", agencia)
	tc.CreateAttr("listURI", uriCatalogo+"catalogo01")
	cur := cbc(inv, "DocumentCurrencyCode", peru.Moneda)
	cur.CreateAttr("listID", "ISO 4217 Alpha")
	cbc(inv, "LineCountNumeric", strconv.Itoa(len(doc.Detalles)+len(doc.Servicios)))

	writeSignatureRef(inv, doc.Empresa)
	writeSupplierParty(inv, doc.Empresa)
	writeCustomerParty(inv, doc.Cliente)
	writePaymentTerms(inv, doc)
	writeTaxTotal(inv, comp.OpGravada, comp.IGV)
	writeLegalMonetaryTotal(inv, comp)

	n := 0
	for _, d := range doc.Detalles {
		n++
		writeInvoiceLine(inv, n, comp.Tipo, d.ProductoNombre, unidadSunat(d.UnidadMedida), d.Cantidad, d.PrecioUnitario, d.Subtotal)
	}
	for _, s := range doc.Servicios {
		n++
		desc := s.Tipo
		if s.Descripcion != "" {
			desc += " - " + s.Descripcion
		}
		writeInvoiceLine(inv, n, comp.Tipo, desc, peru.UnidadServicio, decimal.NewFromInt(1), s.Monto, s.Monto)
	}

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar: %w", err)
	}
	return out, nil
}

func writeSignatureRef(inv *etree.Element, e *entity.Empresa) {
	sig := inv.CreateElement("cac:Signature")
	cbc(sig, "ID", "SIGN-"+e.RUC)
	party := sig.CreateElement("cac:SignatoryParty")
	party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID").SetText(e.RUC)
	party.CreateElement("cac:PartyName").CreateElement("cbc:Name").SetText(e.RazonSocial)
	sig.CreateElement("cac:DigitalSignatureAttachment").
		CreateElement("cac:ExternalReference").
		CreateElement("cbc:URI").SetText("#SIGN-" + e.RUC)
}

func writeSupplierParty(inv *etree.Element, e *entity.Empresa) {
	party := inv.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	id := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	id.CreateAttr("schemeID", peru.CodigoTipoDocumento[peru.TipoDocRUC])
	id.SetText(e.RUC)
	party.CreateElement("cac:PartyName").CreateElement("cbc:Name").SetText(e.RazonSocial)
	legal := party.CreateElement("cac:PartyLegalEntity")
	cbc(legal, "RegistrationName", e.RazonSocial)
	addr := legal.CreateElement("cac:RegistrationAddress")
	cbc(addr, "AddressTypeCode", "0000")
	if e.Direccion != "" {
		addr.CreateElement("cac:AddressLine").CreateElement("cbc:Line").SetText(e.Direccion)
	}
}

func writeCustomerParty(inv *etree.Element, c *entity.Cliente) {
	party := inv.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	id := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	id.CreateAttr("schemeID", peru.CodigoTipoDocumento[c.TipoDocumento])
	id.SetText(c.NumeroDocumento)
	legal := party.CreateElement("cac:PartyLegalEntity")
	cbc(legal, "RegistrationName", c.Nombre)
	if c.Direccion != "" {
		legal.CreateElement("cac:RegistrationAddress").
			CreateElement("cac:AddressLine").
			CreateElement("cbc:Line").SetText(c.Direccion)
	}
}

// writePaymentTerms forma de pago: Contado o Credito con el saldo pendiente como cuota.
func writePaymentTerms(inv *etree.Element, doc *venta.Documento) {
	if doc.Venta == nil {
		return
	}
	pt := inv.CreateElement("cac:PaymentTerms")
	cbc(pt, "ID", "FormaPago")
	if doc.Venta.TipoVenta == entity.TipoVentaContado || doc.Venta.SaldoPendiente.IsZero() {
		cbc(pt, "PaymentMeansID", "Contado")
		return
	}
	cbc(pt, "PaymentMeansID", "Credito")
	amount(pt, "Amount", doc.Venta.SaldoPendiente)
}

func writeTaxTotal(parent *etree.Element, base, igv decimal.Decimal) {
	tt := parent.CreateElement("cac:TaxTotal")
	amount(tt, "TaxAmount", igv)
	sub := tt.CreateElement("cac:TaxSubtotal")
	amount(sub, "TaxableAmount", base)
	amount(sub, "TaxAmount", igv)
	cat := sub.CreateElement("cac:TaxCategory")
	if parent.Tag == "InvoiceLine" {
		cbc(cat, "Percent", peru.TasaIGV.Mul(decimal.NewFromInt(100)).StringFixed(0))
		cbc(cat, "TaxExemptionReasonCode", peru.AfectacionGravada)
	}
	scheme := cat.CreateElement("cac:TaxScheme")
	cbc(scheme, "ID", peru.TributoIGV)
	cbc(scheme, "Name", "IGV")
	cbc(scheme, "TaxTypeCode", "VAT")
}

func writeLegalMonetaryTotal(inv *etree.Element, comp *entity.ComprobanteVenta) {
	lmt := inv.CreateElement("cac:LegalMonetaryTotal")
	amount(lmt, "LineExtensionAmount", comp.OpGravada)
	amount(lmt, "TaxInclusiveAmount", comp.Total)
	amount(lmt, "PayableAmount", comp.Total)
}

// writeInvoiceLine: los precios de la venta incluyen IGV; la base por línea se
// obtiene con el mismo desglose que el comprobante.
func writeInvoiceLine(inv *etree.Element, n int, tipo, descripcion, unidad string, cantidad, precio, importe decimal.Decimal) {
	base, igv := reglas.DesgloseIGV(tipo, importe)
	line := inv.CreateElement("cac:InvoiceLine")
	cbc(line, "ID", strconv.Itoa(n))
	q := cbc(line, "InvoicedQuantity", cantidad.String())
	q.CreateAttr("unitCode", unidad)
	amount(line, "LineExtensionAmount", base)

	pr := line.CreateElement("cac:PricingReference").CreateElement("cac:AlternativeConditionPrice")
	amount(pr, "PriceAmount", precio)
	cbc(pr, "PriceTypeCode", "01")

	writeTaxTotal(line, base, igv)

	line.CreateElement("cac:Item").CreateElement("cbc:Description").SetText(descripcion)
	valorUnitario := base
	if !cantidad.IsZero() {
		valorUnitario = base.Div(cantidad).Round(2)
	}
	amount(line.CreateElement("cac:Price"), "PriceAmount", valorUnitario)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cbc(parent *etree.Element, local, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + local)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, local string, v decimal.Decimal) *etree.Element {
	el := cbc(parent, local, v.StringFixed(2))
	el.CreateAttr("currencyID", peru.Moneda)
	return el
}

func unidadSunat(u string) string {
	if u == entity.UnidadUnidad {
		return peru.UnidadPieza
	}
	return peru.UnidadMillar
}
