// Package store selecciona el repositorio de usuarios según configuración.
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	"github.com/dropDatabas3/signup-svc/internal/store/memory"
	"github.com/dropDatabas3/signup-svc/internal/store/pg"
)

// Options describe el storage a abrir.
type Options struct {
	// Driver: "postgres" o "memory".
	Driver string
	// DSN de conexión (solo postgres).
	DSN string
}

// Open retorna el repositorio según el driver y una función de cleanup.
func Open(ctx context.Context, opts Options) (repository.UserRepository, func(), error) {
	switch opts.Driver {
	case "postgres":
		s, err := pg.Open(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "memory", "":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q", opts.Driver)
	}
}
