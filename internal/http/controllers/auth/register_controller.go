package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	dto "github.com/dropDatabas3/signup-svc/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signup-svc/internal/http/errors"
	"github.com/dropDatabas3/signup-svc/internal/http/metrics"
	"github.com/dropDatabas3/signup-svc/internal/http/middlewares"
	svc "github.com/dropDatabas3/signup-svc/internal/http/services/auth"
	"github.com/dropDatabas3/signup-svc/internal/i18n"
	"github.com/dropDatabas3/signup-svc/internal/observability/logger"
)

const maxRegisterBodySize = 64 * 1024 // 64KB

// successMessage es el acknowledgment fijo de un registro exitoso.
const successMessage = "User created!"

// RegisterController handles POST /api/1.0/users.
type RegisterController struct {
	service svc.RegisterService
	catalog *i18n.Catalog
}

// NewRegisterController creates a new register controller.
func NewRegisterController(service svc.RegisterService, catalog *i18n.Catalog) *RegisterController {
	return &RegisterController{service: service, catalog: catalog}
}

// Register handles user registration.
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	// Limit body size
	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodySize)
	defer r.Body.Close()

	var req dto.RegisterRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httperrors.WriteError(w, httperrors.ErrBodyTooLarge)
			return
		}
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	// Check for extraneous data
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Register(ctx, req)
	if err != nil {
		c.handleError(ctx, w, err)
		return
	}

	metrics.IncRegistration(metrics.OutcomeCreated)
	writeJSON(w, http.StatusOK, dto.RegisterResponse{Message: successMessage})

	log.Info("user created", logger.UserID(result.UserID))
}

// handleError traduce errores del service a responses HTTP. Es la única
// capa que lo hace: las capas de abajo retornan outcomes o fallan.
func (c *RegisterController) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.handleError"))

	var vErr *svc.ValidationError
	switch {
	case errors.As(err, &vErr):
		metrics.IncRegistration(metrics.OutcomeRejected)
		writeJSON(w, http.StatusBadRequest, c.localize(ctx, vErr))
	case repository.IsConflict(err):
		// Carrera perdida contra otro registro con el mismo email: el
		// chequeo de unicidad pasó pero el constraint del storage no.
		log.Warn("duplicate email reached storage", logger.Err(err))
		metrics.IncRegistration(metrics.OutcomeConflict)
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("email already registered"))
	default:
		log.Error("registration error", logger.Err(err))
		metrics.IncRegistration(metrics.OutcomeError)
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

// localize resuelve los message keys del outcome contra el catálogo,
// preservando el orden de declaración de los campos.
func (c *RegisterController) localize(ctx context.Context, vErr *svc.ValidationError) dto.ValidationErrorsResponse {
	locale := middlewares.GetLocale(ctx)
	if locale == "" {
		locale = c.catalog.Default()
	}

	msgs := make(dto.FieldMessages, 0, len(vErr.Outcome))
	for _, fe := range vErr.Outcome {
		msgs = append(msgs, dto.FieldMessage{
			Field:   fe.Field,
			Message: c.catalog.T(locale, fe.Key),
		})
	}
	return dto.ValidationErrorsResponse{ValidationErrors: msgs}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
