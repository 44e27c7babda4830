package auth

import (
	"bytes"
	"encoding/json"
)

// RegisterRequest representa el body de POST /api/1.0/users.
// Los campos son punteros para distinguir "ausente/null" de "vacío":
// la regla not-empty es la única que ve un campo null.
type RegisterRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// RegisterResponse es el body de un registro exitoso.
// Nunca ecoa campos de la cuenta creada: el password hash no aparece
// en ninguna respuesta.
type RegisterResponse struct {
	Message string `json:"message"`
}

// RegisterResult es el resultado interno del RegisterService.
type RegisterResult struct {
	UserID string
}

// FieldMessage es un mensaje de validación ya localizado para un campo.
type FieldMessage struct {
	Field   string
	Message string
}

// FieldMessages serializa como objeto JSON preservando el orden de los
// elementos (el orden de declaración de los campos del formulario).
// encoding/json no garantiza orden para maps, por eso el marshaller manual.
type FieldMessages []FieldMessage

func (m FieldMessages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fm := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fm.Field)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fm.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationErrorsResponse es el body de un registro rechazado (400).
type ValidationErrorsResponse struct {
	ValidationErrors FieldMessages `json:"validationErrors"`
}
