package entity

import "time"

// Coccion un ciclo de quema de un horno. Un horno tiene como máximo una cocción EN_PROCESO.
type Coccion struct {
	ID                string
	EmpresaID         string
	HornoID           string
	HornoNombre       string // solo lectura
	FechaEncendido    time.Time
	FechaApagado      *time.Time
	HumeadaInicio     *time.Time
	QuemaInicio       *time.Time
	CantidadLadrillos int
	Estado            string
	Observaciones     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Estados de cocción.
const (
	CoccionEnProceso  = "EN_PROCESO"
	CoccionFinalizado = "FINALIZADO"
)

// CoccionOperador asignación de personal a una cocción.
type CoccionOperador struct {
	ID             string
	CoccionID      string
	PersonalID     string
	PersonalNombre string // solo lectura
	Funcion        string // HUMEADOR, QUEMADOR, AYUDANTE
	Fecha          time.Time
	CreatedAt      time.Time
}

// Funciones de operador.
const (
	FuncionHumeador = "HUMEADOR"
	FuncionQuemador = "QUEMADOR"
	FuncionAyudante = "AYUDANTE"
)
