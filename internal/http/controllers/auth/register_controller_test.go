package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	healthctrl "github.com/dropDatabas3/signup-svc/internal/http/controllers/health"
	"github.com/dropDatabas3/signup-svc/internal/http/router"
	svcauth "github.com/dropDatabas3/signup-svc/internal/http/services/auth"
	"github.com/dropDatabas3/signup-svc/internal/i18n"
	"github.com/dropDatabas3/signup-svc/internal/security/password"
	"github.com/dropDatabas3/signup-svc/internal/store/memory"
)

// Params livianos para no pagar 64MB de argon2 por request en tests.
var testHashParams = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func newTestServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()

	catalog, err := i18n.Load("en")
	require.NoError(t, err)

	users := memory.New()
	svc := svcauth.NewRegisterService(svcauth.RegisterDeps{Users: users, Hash: testHashParams})

	h := router.New(router.Deps{
		Register: svc,
		Health:   healthctrl.NewHealthController(users),
		Catalog:  catalog,
	})
	return h, users
}

func doRegister(t *testing.T, h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/1.0/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validationErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp struct {
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ValidationErrors
}

func TestRegister_Success(t *testing.T) {
	h, users := newTestServer(t)

	rec := doRegister(t, h, `{"username":"johndoe","email":"john@mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "User created!", resp.Message)

	require.Equal(t, 1, users.Len())
	u, err := users.GetByEmail(context.Background(), "john@mail.com")
	require.NoError(t, err)
	require.Equal(t, "johndoe", u.Username)
	require.NotEqual(t, "Passw0rd", u.PasswordHash)
	require.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))
}

func TestRegister_MissingUsername(t *testing.T) {
	h, users := newTestServer(t)

	rec := doRegister(t, h, `{"email":"john@mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 1)
	require.Equal(t, "Username cannot be null", errs["username"])
	require.Equal(t, 0, users.Len())
}

func TestRegister_OneMessagePerField_ShortCircuit(t *testing.T) {
	h, _ := newTestServer(t)

	// username demasiado corto: solo debe reportar el size, las reglas
	// posteriores del campo no corren.
	rec := doRegister(t, h, `{"username":"abc","email":"john@mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 1)
	require.Equal(t, "Must have min 4 and max 32 characters", errs["username"])
}

func TestRegister_PasswordPattern(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRegister(t, h, `{"username":"johndoe","email":"john@mail.com","password":"alllowercase1"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 1)
	require.Equal(t, "Password must have at least 1 uppercase, 1 lowercase letter and 1 number", errs["password"])
}

func TestRegister_AllFieldsMissing_Order(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRegister(t, h, `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 3)

	// El objeto serializa en el orden de declaración de los campos.
	body := rec.Body.String()
	iu := strings.Index(body, `"username"`)
	ie := strings.Index(body, `"email"`)
	ip := strings.Index(body, `"password"`)
	require.True(t, iu >= 0 && ie >= 0 && ip >= 0, body)
	require.Less(t, iu, ie)
	require.Less(t, ie, ip)
}

func TestRegister_EmailTaken_EnglishDefault(t *testing.T) {
	h, users := newTestServer(t)

	_, err := users.Create(context.Background(), repository.CreateUserInput{
		Username: "first", Email: "john@mail.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	rec := doRegister(t, h, `{"username":"johndoe","email":"john@mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Equal(t, "E-mail in use", errs["email"])
}

func TestRegister_EmailTaken_Turkish(t *testing.T) {
	h, users := newTestServer(t)

	_, err := users.Create(context.Background(), repository.CreateUserInput{
		Username: "first", Email: "john@mail.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	rec := doRegister(t, h, `{"username":"johndoe","email":"john@mail.com","password":"Passw0rd"}`,
		map[string]string{"Accept-Language": "tr"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Equal(t, "Email kullanımda!", errs["email"])
}

func TestRegister_NullUsernameAndTakenEmail(t *testing.T) {
	h, users := newTestServer(t)

	_, err := users.Create(context.Background(), repository.CreateUserInput{
		Username: "first", Email: "john@mail.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	rec := doRegister(t, h, `{"email":"john@mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 2)
	require.Equal(t, "Username cannot be null", errs["username"])
	require.Equal(t, "E-mail in use", errs["email"])
}

func TestRegister_MalformedEmailSkipsUniqueness(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRegister(t, h, `{"username":"johndoe","email":"user.mail.com","password":"Passw0rd"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := validationErrors(t, rec)
	require.Len(t, errs, 1)
	require.Equal(t, "E-mail is not valid", errs["email"])
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRegister(t, h, `{"username":`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotContains(t, rec.Body.String(), "validationErrors")
}

func TestRegister_UnknownField(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRegister(t, h, `{"username":"johndoe","email":"john@mail.com","password":"Passw0rd","admin":true}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	h, users := newTestServer(t)

	const n = 8
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := bytes.NewReader([]byte(`{"username":"johndoe","email":"john@mail.com","password":"Passw0rd"}`))
			req := httptest.NewRequest(http.MethodPost, "/api/1.0/users", body)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, c := range codes {
		switch c {
		case http.StatusOK:
			ok++
		case http.StatusBadRequest, http.StatusConflict:
			// perdió la carrera: en el chequeo de unicidad o en el insert
		default:
			t.Fatalf("unexpected status %d", c)
		}
	}
	require.Equal(t, 1, ok, "exactly one registration must win")
	require.Equal(t, 1, users.Len())
}

func TestReadyz(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ready"`)
}
