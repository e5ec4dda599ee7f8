package peru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRUC(t *testing.T) {
	cases := []struct {
		name  string
		ruc   string
		valid bool
	}{
		{"persona jurídica", "20100070970", true},
		{"sunat", "20131312955", true},
		{"persona natural", "10467793549", true},
		{"dígito incorrecto", "20100070971", false},
		{"prefijo inválido", "30100070970", false},
		{"longitud", "2010007097", false},
		{"letras", "2010007097A", false},
		{"vacío", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRUC(tc.ruc)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestComputeRUCCheckDigit(t *testing.T) {
	d, err := ComputeRUCCheckDigit("2013131295")
	require.NoError(t, err)
	assert.Equal(t, byte('5'), d)

	_, err = ComputeRUCCheckDigit("123")
	assert.Error(t, err)
}

func TestValidateDNIyCE(t *testing.T) {
	assert.NoError(t, ValidateDNI("46027897"))
	assert.Error(t, ValidateDNI("4602789"))
	assert.Error(t, ValidateDNI("4602789X"))

	assert.NoError(t, ValidateCE("001234567"))
	assert.Error(t, ValidateCE("1234"))
	assert.Error(t, ValidateCE("0012-34567"))
}

func TestValidateDocumento(t *testing.T) {
	assert.NoError(t, ValidateDocumento("dni", "46027897"))
	assert.NoError(t, ValidateDocumento("RUC", "20131312955"))
	assert.Error(t, ValidateDocumento("PASAPORTE", "X1"))
}
