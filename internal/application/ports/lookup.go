package ports

import (
	"context"

	"github.com/brickapp/brickapp-api/internal/application/dto"
)

// DocumentoLookup puerto de salida hacia el proveedor de consultas RENIEC/SUNAT.
// Devuelve domain.ErrNotFound si el documento no existe y domain.ErrLookupFailed
// ante cualquier otra falla del proveedor.
type DocumentoLookup interface {
	ConsultarDNI(ctx context.Context, dni string) (*dto.PersonaResponse, error)
	ConsultarRUC(ctx context.Context, ruc string) (*dto.EmpresaSunatResponse, error)
}
