package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest alta de producto.
type CreateProductoRequest struct {
	Nombre         string          `json:"nombre" validate:"required,min=2,max=120"`
	Descripcion    string          `json:"descripcion" validate:"max=500"`
	UnidadMedida   string          `json:"unidad_medida" validate:"omitempty,oneof=MILLAR UNIDAD"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Activo         *bool           `json:"activo"`
}

// UpdateProductoRequest campos editables del producto.
type UpdateProductoRequest struct {
	Nombre         *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Descripcion    *string          `json:"descripcion" validate:"omitempty,max=500"`
	UnidadMedida   *string          `json:"unidad_medida" validate:"omitempty,oneof=MILLAR UNIDAD"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	Activo         *bool            `json:"activo"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion"`
	UnidadMedida   string          `json:"unidad_medida"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Activo         bool            `json:"activo"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ClienteRequest alta o edición completa de cliente.
type ClienteRequest struct {
	TipoDocumento   string `json:"tipo_documento" validate:"required,oneof=DNI RUC CE"`
	NumeroDocumento string `json:"numero_documento" validate:"required"`
	Nombre          string `json:"nombre" validate:"required,min=2,max=200"`
	Direccion       string `json:"direccion" validate:"max=250"`
	Telefono        string `json:"telefono" validate:"max=30"`
	Email           string `json:"email" validate:"omitempty,email,max=120"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID              string    `json:"id"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	Nombre          string    `json:"nombre"`
	Direccion       string    `json:"direccion"`
	Telefono        string    `json:"telefono"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClienteListResponse lista paginada de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProveedorRequest alta o edición completa de proveedor.
type ProveedorRequest struct {
	TipoDocumento   string `json:"tipo_documento" validate:"required,oneof=RUC DNI"`
	NumeroDocumento string `json:"numero_documento" validate:"required"`
	RazonSocial     string `json:"razon_social" validate:"required,min=2,max=200"`
	Direccion       string `json:"direccion" validate:"max=250"`
	Telefono        string `json:"telefono" validate:"max=30"`
	Email           string `json:"email" validate:"omitempty,email,max=120"`
	Activo          *bool  `json:"activo"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID              string    `json:"id"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	RazonSocial     string    `json:"razon_social"`
	Direccion       string    `json:"direccion"`
	Telefono        string    `json:"telefono"`
	Email           string    `json:"email"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProveedorListResponse lista paginada de proveedores.
type ProveedorListResponse struct {
	Items []ProveedorResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PersonalRequest alta o edición completa de un trabajador.
type PersonalRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=100"`
	DNI            string `json:"dni" validate:"required,len=8,numeric"`
	Cargo          string `json:"cargo" validate:"max=60"`
	Telefono       string `json:"telefono" validate:"max=30"`
	FechaIngreso   string `json:"fecha_ingreso"` // AAAA-MM-DD
	Activo         *bool  `json:"activo"`
}

// PersonalResponse salida de un trabajador.
type PersonalResponse struct {
	ID             string     `json:"id"`
	NombreCompleto string     `json:"nombre_completo"`
	DNI            string     `json:"dni"`
	Cargo          string     `json:"cargo"`
	Telefono       string     `json:"telefono"`
	FechaIngreso   *time.Time `json:"fecha_ingreso,omitempty"`
	Activo         bool       `json:"activo"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PersonalListResponse lista paginada de personal.
type PersonalListResponse struct {
	Items []PersonalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
