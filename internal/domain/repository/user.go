package repository

import (
	"context"
	"time"
)

// User representa una cuenta registrada.
// Inmutable una vez creada: el servicio no expone update ni delete.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput contiene los datos para crear una cuenta.
// El caller ya validó los campos; acá solo se persiste.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository define operaciones sobre cuentas de usuario.
//
// La unicidad del email se garantiza en dos niveles: el rule engine la
// chequea con GetByEmail antes de crear, y el storage la refuerza con
// su propio constraint. Create retorna ErrConflict si dos registros
// concurrentes pasan el chequeo y uno pierde la carrera.
type UserRepository interface {
	// GetByEmail busca una cuenta por email (match exacto, sin normalizar).
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create persiste una cuenta nueva.
	// Retorna ErrConflict si el email ya está registrado.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// Ping verifica que el storage esté disponible.
	Ping(ctx context.Context) error
}
