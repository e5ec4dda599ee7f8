package dto

import "time"

// HornoRequest alta o edición completa de horno.
type HornoRequest struct {
	Nombre             string `json:"nombre" validate:"required,min=2,max=80"`
	TipoCombustible    string `json:"tipo_combustible" validate:"max=40"`
	CapacidadLadrillos int    `json:"capacidad_ladrillos" validate:"gte=0"`
	CantidadHumeadores int    `json:"cantidad_humeadores" validate:"gte=0"`
	CantidadQuemadores int    `json:"cantidad_quemadores" validate:"gte=0"`
	Estado             string `json:"estado" validate:"omitempty,oneof=ACTIVO INACTIVO"`
}

// HornoResponse salida de un horno.
type HornoResponse struct {
	ID                 string    `json:"id"`
	Nombre             string    `json:"nombre"`
	TipoCombustible    string    `json:"tipo_combustible"`
	CapacidadLadrillos int       `json:"capacidad_ladrillos"`
	CantidadHumeadores int       `json:"cantidad_humeadores"`
	CantidadQuemadores int       `json:"cantidad_quemadores"`
	Estado             string    `json:"estado"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCoccionRequest inicio de una cocción. Las fechas aceptan AAAA-MM-DD o RFC3339.
type CreateCoccionRequest struct {
	HornoID           string `json:"id_horno" validate:"required,uuid"`
	FechaEncendido    string `json:"fecha_encendido"`
	HumeadaInicio     string `json:"humeada_inicio"`
	QuemaInicio       string `json:"quema_inicio"`
	CantidadLadrillos int    `json:"cantidad_ladrillos" validate:"gte=0"`
	Observaciones     string `json:"observaciones" validate:"max=500"`
}

// UpdateCoccionRequest campos editables de la cocción.
type UpdateCoccionRequest struct {
	FechaEncendido    *string `json:"fecha_encendido"`
	HumeadaInicio     *string `json:"humeada_inicio"`
	QuemaInicio       *string `json:"quema_inicio"`
	CantidadLadrillos *int    `json:"cantidad_ladrillos" validate:"omitempty,gte=0"`
	Observaciones     *string `json:"observaciones" validate:"omitempty,max=500"`
}

// FinalizarCoccionRequest cierre de la cocción; fecha vacía usa la hora actual.
type FinalizarCoccionRequest struct {
	FechaApagado string `json:"fecha_apagado"`
}

// CoccionFilterRequest filtros del listado de cocciones.
type CoccionFilterRequest struct {
	HornoID string `query:"id_horno"`
	Estado  string `query:"estado"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

// CoccionResponse salida de una cocción.
type CoccionResponse struct {
	ID                string                    `json:"id"`
	HornoID           string                    `json:"id_horno"`
	HornoNombre       string                    `json:"horno"`
	FechaEncendido    time.Time                 `json:"fecha_encendido"`
	FechaApagado      *time.Time                `json:"fecha_apagado,omitempty"`
	HumeadaInicio     *time.Time                `json:"humeada_inicio,omitempty"`
	QuemaInicio       *time.Time                `json:"quema_inicio,omitempty"`
	CantidadLadrillos int                       `json:"cantidad_ladrillos"`
	Estado            string                    `json:"estado"`
	Observaciones     string                    `json:"observaciones"`
	Operadores        []CoccionOperadorResponse `json:"operadores,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// CoccionListResponse lista paginada de cocciones.
type CoccionListResponse struct {
	Items []CoccionResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddOperadorRequest asignación de personal a la cocción.
type AddOperadorRequest struct {
	PersonalID string `json:"id_personal" validate:"required,uuid"`
	Funcion    string `json:"funcion" validate:"required,oneof=HUMEADOR QUEMADOR AYUDANTE"`
	Fecha      string `json:"fecha"`
}

// CoccionOperadorResponse salida de un operador asignado.
type CoccionOperadorResponse struct {
	ID             string    `json:"id"`
	PersonalID     string    `json:"id_personal"`
	PersonalNombre string    `json:"personal"`
	Funcion        string    `json:"funcion"`
	Fecha          time.Time `json:"fecha"`
}
