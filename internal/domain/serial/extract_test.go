package serial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/serial"
)

// TestExtract_RangoSimple verifica la expansión de un rango inclusivo.
func TestExtract_RangoSimple(t *testing.T) {
	sn, err := serial.Extract("1-5", 5)
	require.NoError(t, err)
	require.Len(t, sn, 5)
	for i := int64(1); i <= 5; i++ {
		assert.Contains(t, sn, i)
	}
}

func TestExtract_ListaSeparadaPorComas(t *testing.T) {
	sn, err := serial.Extract("1, 2, 3, 4, 5", 5)
	require.NoError(t, err)
	assert.Len(t, sn, 5)
}

func TestExtract_RangosMultiples(t *testing.T) {
	sn, err := serial.Extract("1-5, 10-15", 11)
	require.NoError(t, err)
	assert.Len(t, sn, 11)
	assert.Contains(t, sn, int64(3))
	assert.Contains(t, sn, int64(13))
}

func TestExtract_MezclaGruposYSingles(t *testing.T) {
	sn, err := serial.Extract("100 200-202 300", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{100, 200, 201, 202, 300}, sn)
}

// TestExtract_Fallos cubre los casos inválidos: cada uno debe retornar un
// *domain.ValidationError, nunca un pánico ni un corte en el primer problema.
func TestExtract_Fallos(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected int
	}{
		{"duplicados", "1,2,3,3,3", 5},
		{"cantidad incorrecta", "1,2,3", 5},
		{"cadena vacía", "", 0},
		{"solo separadores", ", , ,", 0},
		{"rango descendente", "10-2", 8},
		{"rango con extremos iguales", "5-5", 1},
		{"grupo con doble guión", "1-5-10", 10},
		{"grupos no numéricos", "10, a, 7-70j", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := serial.Extract(tc.input, tc.expected)
			require.Error(t, err)
			_, ok := domain.AsValidationError(err)
			assert.True(t, ok, "el error debe ser un ValidationError")
		})
	}
}

// TestExtract_AcumulaTodosLosProblemas verifica que no se corta en el primer
// grupo inválido: el caller recibe todos los problemas de una vez.
func TestExtract_AcumulaTodosLosProblemas(t *testing.T) {
	_, err := serial.Extract("a, b, 3, 3", 1)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	// dos grupos no numéricos + un duplicado
	assert.Len(t, verr.Problems, 3)
}

// TestExtract_RangoDesmedido: un rango mucho mayor que la cantidad esperada
// falla por conteo sin expandirse elemento a elemento.
func TestExtract_RangoDesmedido(t *testing.T) {
	_, err := serial.Extract("1-999999999", 5)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Error(), "cantidad esperada (5)")
}

func TestExtract_DuplicadoEntreRangoYSingle(t *testing.T) {
	// El 3 aparece como single y dentro del rango 1-5
	_, err := serial.Extract("3, 1-5", 5)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Error(), "duplicado")
}
