package venta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
)

type fakeGen struct {
	doc   *Documento
	filas []dto.VentaResponse
}

func (f *fakeGen) GenerateComprobantePDF(_ context.Context, doc *Documento) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF"), nil
}

func (f *fakeGen) BuildComprobanteXML(doc *Documento) ([]byte, error) {
	f.doc = doc
	return []byte("<Invoice/>"), nil
}

func (f *fakeGen) WriteVentas(_ *entity.Empresa, ventas []dto.VentaResponse) ([]byte, error) {
	f.filas = ventas
	return []byte("xlsx"), nil
}

func TestDocumentos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gen := &fakeGen{}
	uc := NewDocumentoUseCase(e.store.Ventas(), e.store.Empresas(), e.store.Clientes(), e.store.Productos(), gen, gen, gen)
	v := e.ventaCredito(t)

	b, name, err := uc.ComprobantePDF(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	assert.Equal(t, "B001-00000001.pdf", name)
	require.NotNil(t, gen.doc)
	assert.Equal(t, "20131312955", gen.doc.Empresa.RUC)
	assert.Equal(t, "46027897", gen.doc.Cliente.NumeroDocumento)
	require.Len(t, gen.doc.Detalles, 2)
	assert.Equal(t, entity.UnidadMillar, gen.doc.Detalles[0].UnidadMedida)

	_, name, err = uc.ComprobanteXML(ctx, e.fx.EmpresaID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "20131312955-B001-00000001.xml", name)

	otra := e.store.AddEmpresa("20600000001")
	_, _, err = uc.ComprobantePDF(ctx, otra, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for i := 0; i < 3; i++ {
		e.ventaCredito(t)
	}
	_, err = uc.ExportarVentas(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, gen.filas, 4)
}

func TestExportarVentas_ComprobanteEnLaMismaConsulta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gen := &fakeGen{}
	uc := NewDocumentoUseCase(e.store.Ventas(), e.store.Empresas(), e.store.Clientes(), e.store.Productos(), gen, gen, gen)
	e.ventaCredito(t)
	e.ventaCredito(t)

	// la exportación no consulta el comprobante fila por fila
	e.store.FailOn = "GetComprobante"
	_, err := uc.ExportarVentas(ctx, e.fx.EmpresaID, dto.VentaFilterRequest{})
	require.NoError(t, err)
	require.Len(t, gen.filas, 2)
	numeros := []string{}
	for _, f := range gen.filas {
		require.NotNil(t, f.Comprobante)
		numeros = append(numeros, f.Comprobante.Completo)
	}
	assert.ElementsMatch(t, []string{"B001-00000001", "B001-00000002"}, numeros)
}

func TestComprobantePDF_PropagaErrorDeProducto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gen := &fakeGen{}
	uc := NewDocumentoUseCase(e.store.Ventas(), e.store.Empresas(), e.store.Clientes(), e.store.Productos(), gen, gen, gen)
	v := e.ventaCredito(t)

	e.store.FailOn = "GetProducto"
	_, _, err := uc.ComprobantePDF(ctx, e.fx.EmpresaID, v.ID)
	require.Error(t, err)
	assert.Nil(t, gen.doc)
}
