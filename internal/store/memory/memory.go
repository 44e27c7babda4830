// Package memory implementa repository.UserRepository en memoria.
// Usado en modo dev y en los tests del endpoint. Create es atómico bajo
// el mutex, así que la unicidad del email se comporta igual que el
// constraint de la DB real.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
)

type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*repository.User
}

func New() *Store {
	return &Store{byEmail: map[string]*repository.User{}}
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[input.Email]; ok {
		return nil, repository.ErrConflict
	}

	u := &repository.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[input.Email] = u

	cp := *u
	return &cp, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Len retorna la cantidad de cuentas almacenadas (para tests).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
