// Package auth contiene el servicio de registro de usuarios.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	dto "github.com/dropDatabas3/signup-svc/internal/http/dto/auth"
	"github.com/dropDatabas3/signup-svc/internal/observability/logger"
	"github.com/dropDatabas3/signup-svc/internal/security/password"
	"github.com/dropDatabas3/signup-svc/internal/validation"
)

// Message keys del formulario de registro. Son identificadores
// neutrales de locale: el controller los resuelve contra el catálogo,
// nunca llegan crudos al caller.
const (
	KeyUsernameNull    = "username_null"
	KeyUsernameSize    = "username_size"
	KeyEmailNull       = "email_null"
	KeyInvalidEmail    = "invalid_email"
	KeyEmailInUse      = "email_in_use"
	KeyPasswordNull    = "password_null"
	KeyPasswordSize    = "password_size"
	KeyPasswordPattern = "password_pattern"
)

// Límites de los campos.
const (
	UsernameMinLen = 4
	UsernameMaxLen = 32
	// El largo mínimo canónico del password es 6.
	PasswordMinLen = 6
	PasswordMaxLen = 60
)

// RegisterService define la operación de registro.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResult, error)
}

// RegisterDeps contiene las dependencias del servicio.
type RegisterDeps struct {
	Users repository.UserRepository
	// Hash son los parámetros argon2id; zero value usa password.Default.
	Hash password.Params
}

// ValidationError transporta el outcome de una validación fallida hasta
// el boundary HTTP, que es la única capa que lo traduce a response.
type ValidationError struct {
	Outcome validation.Outcome
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Outcome))
}

type registerService struct {
	users    repository.UserRepository
	hash     password.Params
	username []validation.Rule
	email    []validation.Rule
	pass     []validation.Rule
}

// NewRegisterService crea el servicio y declara las cadenas de reglas.
// Las cadenas son inmutables y se declaran una sola vez; por request
// solo se bindean los valores.
func NewRegisterService(deps RegisterDeps) RegisterService {
	if deps.Hash == (password.Params{}) {
		deps.Hash = password.Default
	}

	s := &registerService{users: deps.Users, hash: deps.Hash}

	s.username = []validation.Rule{
		validation.NotEmpty(KeyUsernameNull),
		validation.LengthRange(KeyUsernameSize, UsernameMinLen, UsernameMaxLen),
	}
	s.email = []validation.Rule{
		validation.NotEmpty(KeyEmailNull),
		validation.EmailFormat(KeyInvalidEmail),
		validation.NotTaken(KeyEmailInUse, s.emailTaken),
	}
	s.pass = []validation.Rule{
		validation.NotEmpty(KeyPasswordNull),
		validation.LengthRange(KeyPasswordSize, PasswordMinLen, PasswordMaxLen),
		validation.CharacterClasses(KeyPasswordPattern),
	}

	return s
}

// emailTaken consulta el repositorio por una cuenta con ese email
// exacto. Solo lectura; un error de storage se propaga como falla de
// infraestructura, no como resultado de validación.
func (s *registerService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	// Orden de declaración fijo: username, email, password.
	outcome, err := validation.Validate(ctx,
		validation.Field{Name: "username", Value: in.Username, Rules: s.username},
		validation.Field{Name: "email", Value: in.Email, Rules: s.email},
		validation.Field{Name: "password", Value: in.Password, Rules: s.pass},
	)
	if err != nil {
		return nil, err
	}
	if !outcome.Valid() {
		log.Debug("registration rejected", logger.Count(len(outcome)))
		return nil, &ValidationError{Outcome: outcome}
	}

	hash, err := password.Hash(s.hash, *in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	// El unique constraint del storage cubre la carrera entre el chequeo
	// de unicidad y este Create: el perdedor recibe ErrConflict.
	user, err := s.users.Create(ctx, repository.CreateUserInput{
		Username:     *in.Username,
		Email:        *in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", logger.UserID(user.ID), logger.Username(user.Username))
	return &dto.RegisterResult{UserID: user.ID}, nil
}
