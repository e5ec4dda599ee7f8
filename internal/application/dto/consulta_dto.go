package dto

// PersonaResponse resultado de consulta de DNI (RENIEC).
type PersonaResponse struct {
	DNI             string `json:"dni"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	NombreCompleto  string `json:"nombre_completo"`
}

// EmpresaSunatResponse resultado de consulta de RUC (SUNAT).
type EmpresaSunatResponse struct {
	RUC          string `json:"ruc"`
	RazonSocial  string `json:"razon_social"`
	Estado       string `json:"estado"`
	Condicion    string `json:"condicion"`
	Direccion    string `json:"direccion"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
}
