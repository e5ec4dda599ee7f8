package entity

import "time"

// Cliente comprador de una empresa. (EmpresaID, TipoDocumento, NumeroDocumento) es único.
type Cliente struct {
	ID              string
	EmpresaID       string
	TipoDocumento   string // DNI, RUC, CE
	NumeroDocumento string
	Nombre          string // nombre completo o razón social
	Direccion       string
	Telefono        string
	Email           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
