package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto tipo de ladrillo (o material) que la empresa vende.
type Producto struct {
	ID             string
	EmpresaID      string
	Nombre         string
	Descripcion    string
	UnidadMedida   string // MILLAR, UNIDAD
	PrecioUnitario decimal.Decimal
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Unidades de medida admitidas.
const (
	UnidadMillar = "MILLAR"
	UnidadUnidad = "UNIDAD"
)
