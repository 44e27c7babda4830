package validation

import (
	"context"
	"regexp"
	"unicode"
)

// emailRegexp exige parte local, "@", labels de dominio que empiezan y
// terminan en alfanumérico, y al menos un segmento top-level separado
// por punto. Rechaza "mail.com", "user.mail.com", "user@.mail" y
// "user@mail".
var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// NotEmpty falla con key cuando el valor es null o vacío.
// Debe ser la primera regla de cada cadena: el bail garantiza que las
// reglas siguientes nunca vean un valor null.
func NotEmpty(key string) Rule {
	return Rule{Key: key, Check: func(ctx context.Context, v *string) (bool, error) {
		return v != nil && *v != "", nil
	}}
}

// LengthRange falla con key cuando el largo en caracteres queda fuera
// de [min, max]. Los bordes son inclusivos.
func LengthRange(key string, min, max int) Rule {
	return Rule{Key: key, Check: func(ctx context.Context, v *string) (bool, error) {
		n := len([]rune(str(v)))
		return n >= min && n <= max, nil
	}}
}

// CharacterClasses falla con key si el valor no tiene al menos una
// minúscula, una mayúscula y un dígito.
func CharacterClasses(key string) Rule {
	return Rule{Key: key, Check: func(ctx context.Context, v *string) (bool, error) {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range str(v) {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit, nil
	}}
}

// EmailFormat falla con key si el valor no es un email sintácticamente
// válido.
func EmailFormat(key string) Rule {
	return Rule{Key: key, Check: func(ctx context.Context, v *string) (bool, error) {
		return emailRegexp.MatchString(str(v)), nil
	}}
}

// NotTaken falla con key si el colaborador reporta el valor como ya
// registrado. Por el bail, solo corre cuando las reglas previas del
// campo pasaron: nunca gastamos un lookup en un email malformado.
func NotTaken(key string, taken func(ctx context.Context, value string) (bool, error)) Rule {
	return Rule{Key: key, Check: func(ctx context.Context, v *string) (bool, error) {
		inUse, err := taken(ctx, str(v))
		if err != nil {
			return false, err
		}
		return !inUse, nil
	}}
}
