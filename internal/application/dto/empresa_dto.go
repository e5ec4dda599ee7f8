package dto

import "time"

// UpdateEmpresaRequest datos editables de la empresa (el RUC no cambia).
type UpdateEmpresaRequest struct {
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=3,max=200"`
	Direccion   *string `json:"direccion" validate:"omitempty,max=250"`
	Telefono    *string `json:"telefono" validate:"omitempty,max=30"`
	Email       *string `json:"email" validate:"omitempty,email,max=120"`
}

// EmpresaResponse salida de la empresa.
type EmpresaResponse struct {
	ID          string    `json:"id"`
	RazonSocial string    `json:"razon_social"`
	RUC         string    `json:"ruc"`
	Direccion   string    `json:"direccion"`
	Telefono    string    `json:"telefono"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
