package consulta

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
)

type fakeLookup struct {
	llamadas int
	err      error
}

func (f *fakeLookup) ConsultarDNI(_ context.Context, dni string) (*dto.PersonaResponse, error) {
	f.llamadas++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PersonaResponse{DNI: dni, Nombres: "JUAN", ApellidoPaterno: "PEREZ", ApellidoMaterno: "QUISPE", NombreCompleto: "JUAN PEREZ QUISPE"}, nil
}

func (f *fakeLookup) ConsultarRUC(_ context.Context, ruc string) (*dto.EmpresaSunatResponse, error) {
	f.llamadas++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.EmpresaSunatResponse{RUC: ruc, RazonSocial: "SUPERINTENDENCIA NACIONAL DE ADUANAS Y DE ADMINISTRACION TRIBUTARIA", Estado: "ACTIVO"}, nil
}

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m[key] = value
	return nil
}

func TestDNI_UsaCache(t *testing.T) {
	lk := &fakeLookup{}
	cache := mapCache{}
	uc := NewUseCase(lk, cache, time.Hour)
	ctx := context.Background()

	p, err := uc.DNI(ctx, "46027897")
	require.NoError(t, err)
	assert.Equal(t, "JUAN PEREZ QUISPE", p.NombreCompleto)

	p, err = uc.DNI(ctx, " 46027897 ")
	require.NoError(t, err)
	assert.Equal(t, "PEREZ", p.ApellidoPaterno)
	assert.Equal(t, 1, lk.llamadas)
	assert.Contains(t, cache, "consulta:dni:46027897")
}

func TestRUC_ValidaAntesDeConsultar(t *testing.T) {
	lk := &fakeLookup{}
	uc := NewUseCase(lk, mapCache{}, time.Hour)

	_, err := uc.RUC(context.Background(), "20100070971")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.DNI(context.Background(), "1234")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, lk.llamadas)

	e, err := uc.RUC(context.Background(), "20131312955")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVO", e.Estado)
}

func TestConsulta_ErroresNoSeCachean(t *testing.T) {
	lk := &fakeLookup{err: fmt.Errorf("%w: HTTP 500", domain.ErrLookupFailed)}
	cache := mapCache{}
	uc := NewUseCase(lk, cache, time.Hour)

	_, err := uc.DNI(context.Background(), "46027897")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.Empty(t, cache)

	lk.err = fmt.Errorf("%w: DNI", domain.ErrNotFound)
	_, err = uc.DNI(context.Background(), "46027897")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, lk.llamadas)
}
