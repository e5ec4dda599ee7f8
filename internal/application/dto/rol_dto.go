package dto

import "time"

// CreateRolRequest alta de rol; permisos es opcional.
type CreateRolRequest struct {
	Nombre      string   `json:"nombre" validate:"required,min=3,max=60"`
	Descripcion string   `json:"descripcion" validate:"max=250"`
	Permisos    []string `json:"permisos"`
}

// UpdateRolRequest datos editables del rol.
type UpdateRolRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=3,max=60"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=250"`
}

// SetPermisosRequest reemplaza la asignación de permisos.
type SetPermisosRequest struct {
	Permisos []string `json:"permisos" validate:"required"`
}

// RolResponse salida de un rol.
type RolResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Permisos    []string  `json:"permisos,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
