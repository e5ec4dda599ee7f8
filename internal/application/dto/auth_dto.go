package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión con el usuario y sus permisos efectivos.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // segundos
	Usuario   UsuarioResponse `json:"usuario"`
	Permisos  []string        `json:"permisos"`
}

// MeResponse usuario de la sesión actual.
type MeResponse struct {
	Usuario  UsuarioResponse `json:"usuario"`
	Empresa  EmpresaResponse `json:"empresa"`
	Permisos []string        `json:"permisos"`
}

// PermisoResponse entrada del catálogo.
type PermisoResponse struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
}

// ModuloPermisosResponse permisos agrupados por módulo.
type ModuloPermisosResponse struct {
	Modulo   string            `json:"modulo"`
	Permisos []PermisoResponse `json:"permisos"`
}
