package dimension

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	"github.com/kailas-cloud/dimreg/internal/logger"
	"github.com/kailas-cloud/dimreg/internal/metrics"
)

const (
	upsertFailed = "Something went wrong, failed to create/update dimension"
	listFailed   = "Something went wrong, failed to list dimensions"
)

// CreateRequest is a create-or-replace input as received from the caller.
// FunctionName is kept raw so that non-string values can be rejected.
type CreateRequest struct {
	Name         string
	Priority     int
	Schema       json.RawMessage
	FunctionName json.RawMessage
}

// Service handles dimension create-or-replace and listing.
type Service struct {
	repo     Repository
	meta     MetaValidator
	compiler SchemaCompiler
	tagger   Tagger
	clock    clockwork.Clock
}

// New creates a dimension service. A nil clock means the real clock.
func New(repo Repository, meta MetaValidator, compiler SchemaCompiler, tagger Tagger, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{repo: repo, meta: meta, compiler: compiler, tagger: tagger, clock: clock}
}

// CreateOrReplace validates req and atomically stores it for the tenant.
// Returned errors wrap domain.ErrInvalidInput or domain.ErrUnexpected.
func (s *Service) CreateOrReplace(
	ctx context.Context, t tenant.Tenant, actor string, req CreateRequest,
) (domdim.WithMandatory, error) {
	d, err := s.build(actor, req)
	if err != nil {
		metrics.DimensionUpsertsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return domdim.WithMandatory{}, err
	}

	stored, err := s.repo.Upsert(ctx, t, d)
	if err != nil {
		return domdim.WithMandatory{}, s.translate(ctx, t, actor, d, err)
	}

	metrics.DimensionUpsertsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return s.tagger.TagOne(t, stored), nil
}

// build runs the validation pipeline in order: meta-schema, compile, function name.
func (s *Service) build(actor string, req CreateRequest) (domdim.Dimension, error) {
	if err := s.meta.Validate(req.Schema); err != nil {
		return domdim.Dimension{}, fmt.Errorf("validate schema: %w", err)
	}
	if err := s.compiler.Check(req.Schema); err != nil {
		return domdim.Dimension{}, fmt.Errorf("compile schema: %w", err)
	}

	fn, err := domdim.ParseFunctionRef(req.FunctionName)
	if err != nil {
		return domdim.Dimension{}, domain.InvalidInput("%s", err.Error())
	}

	d, err := domdim.New(req.Name, req.Priority, req.Schema, fn, domdim.NewAudit(actor, s.clock.Now().UTC()))
	if err != nil {
		return domdim.Dimension{}, domain.InvalidInput("%s", err.Error())
	}
	return d, nil
}

func (s *Service) translate(ctx context.Context, t tenant.Tenant, actor string, d domdim.Dimension, err error) error {
	log := logger.FromContext(ctx).With(
		zap.String("tenant", t.String()),
		zap.String("dimension", d.Name()),
		zap.String("actor", actor),
		zap.Stringer("function", d.Function()),
	)

	if errors.Is(err, domain.ErrFunctionNotFound) {
		metrics.DimensionUpsertsTotal.WithLabelValues(metrics.ResultFunctionNotFound).Inc()
		log.Error("Dimension references unknown function", zap.Error(err))
		name, _ := d.Function().Name()
		return domain.InvalidInput("Function %s doesn't exist", name)
	}

	metrics.DimensionUpsertsTotal.WithLabelValues(metrics.ResultUnexpected).Inc()
	log.Error("Failed to upsert dimension", zap.Error(err))
	return domain.Unexpected(upsertFailed)
}

// List returns all dimensions of the tenant in storage order, tagged.
func (s *Service) List(ctx context.Context, t tenant.Tenant) ([]domdim.WithMandatory, error) {
	dims, err := s.repo.List(ctx, t)
	if err != nil {
		metrics.DimensionListsTotal.WithLabelValues(metrics.ResultUnexpected).Inc()
		logger.FromContext(ctx).Error("Failed to list dimensions",
			zap.String("tenant", t.String()),
			zap.Error(err),
		)
		return nil, domain.Unexpected(listFailed)
	}
	metrics.DimensionListsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return s.tagger.Tag(t, dims), nil
}
