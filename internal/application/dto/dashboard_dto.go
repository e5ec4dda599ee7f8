package dto

import "github.com/shopspring/decimal"

// ResumenVentas cantidad y monto de ventas en un periodo.
type ResumenVentas struct {
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

// DashboardResumenResponse indicadores del panel principal.
type DashboardResumenResponse struct {
	VentasHoy               ResumenVentas   `json:"ventas_hoy"`
	VentasMes               ResumenVentas   `json:"ventas_mes"`
	SaldoPorCobrar          decimal.Decimal `json:"saldo_por_cobrar"`
	VentasPendientesEntrega int             `json:"ventas_pendientes_entrega"`
	CoccionesEnProceso      int             `json:"cocciones_en_proceso"`
	Periodo                 string          `json:"periodo"`
}
