package dto

import "time"

// CreateUsuarioRequest alta de usuario.
type CreateUsuarioRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=100"`
	Usuario        string `json:"usuario" validate:"required,login"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Email          string `json:"email" validate:"omitempty,email,max=120"`
	RolID          string `json:"id_rol" validate:"required,uuid"`
	Activo         *bool  `json:"activo"`
}

// UpdateUsuarioRequest campos editables; los nulos no cambian.
type UpdateUsuarioRequest struct {
	NombreCompleto *string `json:"nombre_completo" validate:"omitnil,min=3,max=100"`
	Usuario        *string `json:"usuario" validate:"omitnil,login"`
	Email          *string `json:"email" validate:"omitempty,email,max=120"`
	RolID          *string `json:"id_rol" validate:"omitempty,uuid"`
	Activo         *bool   `json:"activo"`
}

// ChangePasswordRequest nueva contraseña.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UsuarioResponse salida de un usuario (sin hash).
type UsuarioResponse struct {
	ID             string    `json:"id"`
	EmpresaID      string    `json:"id_empresa"`
	NombreCompleto string    `json:"nombre_completo"`
	Usuario        string    `json:"usuario"`
	Email          string    `json:"email"`
	RolID          string    `json:"id_rol"`
	RolNombre      string    `json:"rol"`
	Activo         bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UsuarioListResponse lista paginada de usuarios.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
