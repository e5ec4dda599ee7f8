// Package consulta resuelve DNI (RENIEC) y RUC (SUNAT) a través del proveedor
// configurado, con caché de resultados.
package consulta

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/ports"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/pkg/peru"
)

// UseCase consultas de documentos.
type UseCase struct {
	lookup ports.DocumentoLookup
	cache  ports.Cache
	ttl    time.Duration
}

// NewUseCase construye el caso de uso. ttl <= 0 desactiva la caché.
func NewUseCase(lookup ports.DocumentoLookup, cache ports.Cache, ttl time.Duration) *UseCase {
	return &UseCase{lookup: lookup, cache: cache, ttl: ttl}
}

// DNI consulta un DNI. El formato se valida antes de llamar al proveedor.
func (uc *UseCase) DNI(ctx context.Context, numero string) (*dto.PersonaResponse, error) {
	numero = strings.TrimSpace(numero)
	if err := peru.ValidateDNI(numero); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var out dto.PersonaResponse
	if uc.fromCache(ctx, "consulta:dni:"+numero, &out) {
		return &out, nil
	}
	p, err := uc.lookup.ConsultarDNI(ctx, numero)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, "consulta:dni:"+numero, p)
	return p, nil
}

// RUC consulta un RUC (con dígito verificador válido).
func (uc *UseCase) RUC(ctx context.Context, numero string) (*dto.EmpresaSunatResponse, error) {
	numero = strings.TrimSpace(numero)
	if err := peru.ValidateRUC(numero); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var out dto.EmpresaSunatResponse
	if uc.fromCache(ctx, "consulta:ruc:"+numero, &out) {
		return &out, nil
	}
	e, err := uc.lookup.ConsultarRUC(ctx, numero)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, "consulta:ruc:"+numero, e)
	return e, nil
}

// fromCache ignora errores de la caché: una caché caída no impide la consulta.
func (uc *UseCase) fromCache(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil || uc.ttl <= 0 {
		return false
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

func (uc *UseCase) toCache(ctx context.Context, key string, v any) {
	if uc.cache == nil || uc.ttl <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = uc.cache.Set(ctx, key, string(b), uc.ttl)
}
