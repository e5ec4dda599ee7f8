// Package peru contiene validaciones de documentos de identidad y catálogos
// SUNAT usados por la emisión de comprobantes.
package peru

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos para el dígito verificador del RUC (módulo 11 SUNAT), aplicados a los 10 primeros dígitos.
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// prefijos de RUC vigentes: 10 persona natural, 15/16/17 casos especiales, 20 persona jurídica.
var rucPrefixes = map[string]bool{"10": true, "15": true, "16": true, "17": true, "20": true}

// ValidateRUC valida longitud, prefijo y dígito verificador de un RUC.
func ValidateRUC(ruc string) error {
	ruc = strings.TrimSpace(ruc)
	if len(ruc) != 11 || !onlyDigits(ruc) {
		return fmt.Errorf("peru: el RUC debe tener 11 dígitos numéricos")
	}
	if !rucPrefixes[ruc[:2]] {
		return fmt.Errorf("peru: prefijo de RUC inválido: %s", ruc[:2])
	}
	expected, err := ComputeRUCCheckDigit(ruc[:10])
	if err != nil {
		return err
	}
	if ruc[10] != expected {
		return fmt.Errorf("peru: dígito verificador del RUC inválido: esperado %c, recibido %c", expected, ruc[10])
	}
	return nil
}

// ComputeRUCCheckDigit calcula el dígito verificador para los 10 primeros dígitos del RUC.
func ComputeRUCCheckDigit(base string) (byte, error) {
	if len(base) != 10 || !onlyDigits(base) {
		return 0, fmt.Errorf("peru: se requieren 10 dígitos para calcular el dígito verificador")
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(base[i]-'0') * rucWeights[i]
	}
	d := 11 - sum%11
	switch d {
	case 10:
		d = 0
	case 11:
		d = 1
	}
	return byte('0' + d), nil
}

// ValidateDNI valida un DNI: exactamente 8 dígitos.
func ValidateDNI(dni string) error {
	dni = strings.TrimSpace(dni)
	if len(dni) != 8 || !onlyDigits(dni) {
		return fmt.Errorf("peru: el DNI debe tener 8 dígitos numéricos")
	}
	return nil
}

// ValidateCE valida un carné de extranjería: 8 a 12 caracteres alfanuméricos.
func ValidateCE(ce string) error {
	ce = strings.TrimSpace(ce)
	if len(ce) < 8 || len(ce) > 12 {
		return fmt.Errorf("peru: el carné de extranjería debe tener entre 8 y 12 caracteres")
	}
	for _, r := range ce {
		if !unicode.IsDigit(r) && !unicode.IsLetter(r) {
			return fmt.Errorf("peru: el carné de extranjería solo admite letras y dígitos")
		}
	}
	return nil
}

// ValidateDocumento valida el número según su tipo (DNI, RUC, CE).
func ValidateDocumento(tipo, numero string) error {
	switch strings.ToUpper(tipo) {
	case TipoDocDNI:
		return ValidateDNI(numero)
	case TipoDocRUC:
		return ValidateRUC(numero)
	case TipoDocCE:
		return ValidateCE(numero)
	default:
		return fmt.Errorf("peru: tipo de documento no soportado: %q", tipo)
	}
}

func onlyDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
