// Package validation implementa el rule engine del registro: cadenas de
// reglas ordenadas por campo, con corte (bail) en la primera falla de
// cada campo y evaluación independiente entre campos.
//
// Las reglas comparten una sola forma, sincrónicas o no: reciben un
// context y pueden consultar colaboradores (ej: unicidad de email
// contra el repositorio). Un error de colaborador aborta la validación
// completa y se propaga como falla de infraestructura, nunca como
// resultado de validación.
package validation

import (
	"context"
	"fmt"
)

// Rule es un predicado con su message key de falla.
// Check retorna (false, nil) cuando la regla no pasa, y un error solo
// ante una falla de infraestructura (colaborador caído).
type Rule struct {
	Key   string
	Check func(ctx context.Context, value *string) (bool, error)
}

// Field es un campo del request con su cadena ordenada de reglas.
// Las cadenas se declaran una vez al inicio del proceso; el Value se
// bindea por request.
type Field struct {
	Name  string
	Value *string
	Rules []Rule
}

// FieldError es la falla de un campo: a lo sumo una por campo,
// la primera regla que no pasó (bail).
type FieldError struct {
	Field string
	Key   string
}

// Outcome es el resultado de la validación, ordenado por el orden de
// declaración de los campos. Vacío significa "válido".
type Outcome []FieldError

// Valid indica si no hubo fallas.
func (o Outcome) Valid() bool {
	return len(o) == 0
}

// Key retorna el message key del campo, si falló.
func (o Outcome) Key(field string) (string, bool) {
	for _, fe := range o {
		if fe.Field == field {
			return fe.Key, true
		}
	}
	return "", false
}

// Validate evalúa cada campo en el orden declarado. Dentro de un campo
// las reglas corren en orden y la primera falla corta la cadena; una
// falla en un campo no suprime la evaluación de los demás.
func Validate(ctx context.Context, fields ...Field) (Outcome, error) {
	var out Outcome
	for _, f := range fields {
		for _, r := range f.Rules {
			ok, err := r.Check(ctx, f.Value)
			if err != nil {
				return nil, fmt.Errorf("validation: rule %s/%s: %w", f.Name, r.Key, err)
			}
			if !ok {
				out = append(out, FieldError{Field: f.Name, Key: r.Key})
				break
			}
		}
	}
	return out, nil
}
