// Package serial extrae números de serie desde texto libre ingresado por el
// usuario. Es una función pura: las capas de formularios pueden validar la
// entrada antes de invocar la serialización de stock.
package serial

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Extract interpreta una especificación de seriales y devuelve el conjunto
// de enteros únicos que describe, validando contra la cantidad esperada.
//
// Reglas:
//   - los grupos se separan por espacios, saltos de línea o comas
//   - un grupo "a-b" es un rango inclusivo; requiere a < b estricto
//   - un grupo sin guión debe ser un entero positivo
//   - los errores se acumulan grupo a grupo, nunca se corta en el primero
//
// Si hay errores, la cantidad total no coincide con expected o no se produjo
// ningún número, retorna *domain.ValidationError con todos los problemas.
func Extract(input string, expected int) ([]int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.NewValidationError("cadena de números de serie vacía")
	}

	groups := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	var numbers []int64
	seen := make(map[int64]bool)
	verr := domain.NewValidationError()

	collect := func(n int64) {
		if n < 1 {
			verr.Addf("serial inválido: %d", n)
			return
		}
		if seen[n] {
			verr.Addf("serial duplicado: %d", n)
			return
		}
		seen[n] = true
		numbers = append(numbers, n)
	}

	for _, group := range groups {
		group = strings.TrimSpace(group)

		// Un guión indica un rango de números
		if strings.Contains(group, "-") {
			parts := strings.Split(group, "-")
			if len(parts) != 2 {
				verr.Addf("grupo inválido: %s", group)
				continue
			}
			a, errA := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
			b, errB := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
			if errA != nil || errB != nil || a >= b {
				verr.Addf("grupo inválido: %s", group)
				continue
			}
			// un rango que por sí solo excede expected nunca puede
			// coincidir: falla por conteo sin materializarlo
			if size := b - a + 1; size <= 0 || size > int64(expected) {
				verr.Addf("la cantidad de seriales únicos (%d) debe coincidir con la cantidad esperada (%d)", size, expected)
				continue
			}
			for n := a; n <= b; n++ {
				collect(n)
			}
			continue
		}

		n, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			verr.Addf("grupo inválido: %s", group)
			continue
		}
		collect(n)
	}

	if verr.HasProblems() {
		return nil, verr
	}
	if len(numbers) == 0 {
		return nil, domain.NewValidationError("no se encontraron números de serie")
	}
	if len(numbers) != expected {
		verr.Addf("la cantidad de seriales únicos (%d) debe coincidir con la cantidad esperada (%d)", len(numbers), expected)
		return nil, verr
	}
	return numbers, nil
}
