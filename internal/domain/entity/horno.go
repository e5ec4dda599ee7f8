package entity

import "time"

// Horno de cocción de ladrillos.
type Horno struct {
	ID                 string
	EmpresaID          string
	Nombre             string
	TipoCombustible    string
	CapacidadLadrillos int
	CantidadHumeadores int
	CantidadQuemadores int
	Estado             string // ACTIVO, INACTIVO
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Estados de horno.
const (
	HornoActivo   = "ACTIVO"
	HornoInactivo = "INACTIVO"
)
