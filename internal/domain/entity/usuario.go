package entity

import "time"

// Usuario cuenta de acceso de una empresa. El login (Usuario) es único en todo el sistema.
type Usuario struct {
	ID             string
	EmpresaID      string
	NombreCompleto string
	Usuario        string
	PasswordHash   string
	Email          string
	RolID          string
	RolNombre      string // solo lectura (join con roles)
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
