package entity

import "time"

// Personal trabajador de la planta (operadores de horno, cargadores, etc.).
type Personal struct {
	ID             string
	EmpresaID      string
	NombreCompleto string
	DNI            string
	Cargo          string
	Telefono       string
	FechaIngreso   *time.Time
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
