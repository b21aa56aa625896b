package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	logpkg "github.com/kailas-cloud/dimreg/internal/logger"
	gen "github.com/kailas-cloud/dimreg/internal/transport/generated"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
	healthuc "github.com/kailas-cloud/dimreg/internal/usecase/health"
)

const maxBodyBytes = 1 << 20

// DimensionService is the dimension use case as seen by the HTTP layer.
type DimensionService interface {
	CreateOrReplace(ctx context.Context, t tenant.Tenant, actor string, req dimensionuc.CreateRequest) (domdim.WithMandatory, error)
	List(ctx context.Context, t tenant.Tenant) ([]domdim.WithMandatory, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	dimensions    DimensionService
	tenants       TenantResolver
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	dimensions DimensionService,
	tenants TenantResolver,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		dimensions: dimensions,
		tenants:    tenants,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, gen.ErrorResponseCodeBadArgument),
		sentinelHandler(domain.ErrUnknownTenant, http.StatusBadRequest, gen.ErrorResponseCodeInvalidTenant),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized),
		sentinelHandler(domain.ErrUnexpected, http.StatusInternalServerError, gen.ErrorResponseCodeUnexpectedError),
	}
	return s
}

// Mount registers the generated routes on r. Middleware must be installed on r first.
func (s *Server) Mount(r chi.Router) {
	gen.HandlerWithOptions(s, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
}

// paramError answers requests the generated wrapper could not bind.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	logpkg.FromContextOr(r.Context(), s.logger).Warn("invalid request parameters", zap.Error(err))

	var missing *gen.RequiredHeaderError
	var malformed *gen.InvalidParamFormatError
	var repeated *gen.TooManyValuesForParamError
	switch {
	case errors.As(err, &missing) && missing.ParamName == TenantHeader,
		errors.As(err, &malformed) && malformed.ParamName == TenantHeader,
		errors.As(err, &repeated) && repeated.ParamName == TenantHeader:
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidTenant, "tenant is required")
	default:
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "invalid request")
	}
}

// CreateOrReplaceDimension handles PUT /dimension.
func (s *Server) CreateOrReplaceDimension(
	w http.ResponseWriter, r *http.Request, params gen.CreateOrReplaceDimensionParams,
) {
	t, err := s.tenants.Resolve(params.XTenant)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var req gen.CreateDimensionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Priority == nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "priority is required")
		return
	}

	d, err := s.dimensions.CreateOrReplace(r.Context(), t, ActorFromContext(r.Context()), requestToUsecase(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dimensionToGen(d))
}

// ListDimensions handles GET /dimension.
func (s *Server) ListDimensions(w http.ResponseWriter, r *http.Request, params gen.ListDimensionsParams) {
	t, err := s.tenants.Resolve(params.XTenant)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	dims, err := s.dimensions.List(r.Context(), t)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]gen.Dimension, len(dims))
	for i, d := range dims {
		items[i] = dimensionToGen(d)
	}
	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToGen(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler creates an errorHandler that matches a sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := domain.UserMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
