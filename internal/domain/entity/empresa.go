package entity

import "time"

// Empresa representa un tenant del sistema (fábrica de ladrillos).
type Empresa struct {
	ID          string
	RazonSocial string
	RUC         string // 11 dígitos, inmutable tras el alta
	Direccion   string
	Telefono    string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
