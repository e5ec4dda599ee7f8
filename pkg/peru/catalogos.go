package peru

import "github.com/shopspring/decimal"

// Tipos de documento de identidad aceptados por la aplicación.
const (
	TipoDocDNI = "DNI"
	TipoDocRUC = "RUC"
	TipoDocCE  = "CE"
)

// Catálogo 06 SUNAT: código del tipo de documento de identidad.
var CodigoTipoDocumento = map[string]string{
	TipoDocDNI: "1",
	TipoDocCE:  "4",
	TipoDocRUC: "6",
}

// Catálogo 01 SUNAT: tipo de comprobante. La nota de venta es interna y no tiene código SUNAT.
var CodigoTipoComprobante = map[string]string{
	"FACTURA":    "01",
	"BOLETA":     "03",
	"NOTA_VENTA": "00",
}

const (
	Moneda            = "PEN"
	UnidadMillar      = "MIL" // millar de ladrillos
	UnidadPieza       = "NIU"
	UnidadServicio    = "ZZ"
	AfectacionGravada = "10" // catálogo 07: gravado - operación onerosa
	TributoIGV        = "1000"
)

// TasaIGV impuesto general a las ventas (18%).
var TasaIGV = decimal.NewFromFloat(0.18)
