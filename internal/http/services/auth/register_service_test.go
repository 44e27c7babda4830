package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	dto "github.com/dropDatabas3/signup-svc/internal/http/dto/auth"
	"github.com/dropDatabas3/signup-svc/internal/security/password"
	"github.com/dropDatabas3/signup-svc/internal/store/memory"
)

var fastParams = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func ptr(s string) *string { return &s }

func validRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: ptr("johndoe"),
		Email:    ptr("john@mail.com"),
		Password: ptr("Passw0rd"),
	}
}

func TestRegister_CreatesUser(t *testing.T) {
	users := memory.New()
	svc := NewRegisterService(RegisterDeps{Users: users, Hash: fastParams})

	res, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.UserID == "" {
		t.Fatal("expected user id")
	}

	u, err := users.GetByEmail(context.Background(), "john@mail.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !password.Verify("Passw0rd", u.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegister_InvalidFields_OrderedOutcome(t *testing.T) {
	svc := NewRegisterService(RegisterDeps{Users: memory.New(), Hash: fastParams})

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: nil,
		Email:    ptr("not-an-email"),
		Password: ptr("short"),
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Outcome) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(vErr.Outcome))
	}
	want := []struct{ field, key string }{
		{"username", KeyUsernameNull},
		{"email", KeyInvalidEmail},
		{"password", KeyPasswordSize},
	}
	for i, w := range want {
		if vErr.Outcome[i].Field != w.field || vErr.Outcome[i].Key != w.key {
			t.Fatalf("outcome[%d] = %+v, want %+v", i, vErr.Outcome[i], w)
		}
	}
}

// failingRepo simula un storage caído.
type failingRepo struct{}

var errStorageDown = errors.New("storage down")

func (failingRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return nil, errStorageDown
}

func (failingRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	return nil, errStorageDown
}

func (failingRepo) Ping(ctx context.Context) error { return errStorageDown }

func TestRegister_UniquenessLookupFailure_IsInfraError(t *testing.T) {
	svc := NewRegisterService(RegisterDeps{Users: failingRepo{}, Hash: fastParams})

	_, err := svc.Register(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		t.Fatalf("infra failure must not surface as validation outcome: %v", err)
	}
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestRegister_DuplicateCreate_PropagatesConflict(t *testing.T) {
	users := memory.New()
	if _, err := users.Create(context.Background(), repository.CreateUserInput{
		Username: "first", Email: "race@mail.com", PasswordHash: "h",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// taken siempre false: simula perder la carrera entre el chequeo de
	// unicidad y el insert.
	svc := NewRegisterService(RegisterDeps{Users: users, Hash: fastParams}).(*registerService)
	for i := range svc.email {
		if svc.email[i].Key == KeyEmailInUse {
			svc.email[i].Check = func(ctx context.Context, v *string) (bool, error) { return true, nil }
		}
	}

	req := validRequest()
	req.Email = ptr("race@mail.com")
	_, err := svc.Register(context.Background(), req)
	if !repository.IsConflict(err) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
