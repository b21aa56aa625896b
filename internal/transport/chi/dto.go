package chi

import (
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	gen "github.com/kailas-cloud/dimreg/internal/transport/generated"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
	healthuc "github.com/kailas-cloud/dimreg/internal/usecase/health"
)

// requestToUsecase expects Priority to be checked by the caller.
func requestToUsecase(r gen.CreateDimensionRequest) dimensionuc.CreateRequest {
	return dimensionuc.CreateRequest{
		Name:         r.Dimension,
		Priority:     *r.Priority,
		Schema:       r.Schema,
		FunctionName: r.FunctionName,
	}
}

func dimensionToGen(d domdim.WithMandatory) gen.Dimension {
	a := d.Audit()
	out := gen.Dimension{
		Dimension:      d.Name(),
		Priority:       d.Priority(),
		Schema:         d.Schema(),
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
		LastModifiedBy: a.LastModifiedBy,
		LastModifiedAt: a.LastModifiedAt,
		Mandatory:      d.Mandatory,
	}
	if name, ok := d.Function().Name(); ok {
		out.FunctionName = &name
	}
	return out
}

func healthToGen(report healthuc.Report) gen.HealthResponse {
	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}
	return gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	}
}
