package entity

import "time"

// Rol agrupa permisos dentro de una empresa.
type Rol struct {
	ID          string
	EmpresaID   string
	Nombre      string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permiso entrada del catálogo global de permisos (tabla permisos).
type Permiso struct {
	Codigo      string
	Modulo      string
	Descripcion string
}

// RolAdministrador nombre del rol creado en el alta de una empresa.
const RolAdministrador = "Administrador"
