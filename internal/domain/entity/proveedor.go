package entity

import "time"

// Proveedor de insumos (arcilla, leña, carbón, etc.).
type Proveedor struct {
	ID              string
	EmpresaID       string
	TipoDocumento   string // RUC, DNI
	NumeroDocumento string
	RazonSocial     string
	Direccion       string
	Telefono        string
	Email           string
	Activo          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
