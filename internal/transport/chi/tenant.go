package chi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/domain"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	logpkg "github.com/kailas-cloud/dimreg/internal/logger"
	gen "github.com/kailas-cloud/dimreg/internal/transport/generated"
)

// TenantHeader carries the tenant on every dimension request.
const TenantHeader = "x-tenant"

// TenantResolver validates a tenant name against configuration.
type TenantResolver interface {
	Resolve(name string) (tenant.Tenant, error)
}

type tenantCtxKey struct{}

// TenantFromContext returns the resolved tenant.
func TenantFromContext(ctx context.Context) (tenant.Tenant, bool) {
	t, ok := ctx.Value(tenantCtxKey{}).(tenant.Tenant)
	return t, ok
}

// TenantMiddleware resolves the x-tenant header. Unknown tenants get 400 invalid_tenant.
func TenantMiddleware(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			t, err := resolver.Resolve(r.Header.Get(TenantHeader))
			if err != nil {
				writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidTenant, domain.UserMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), tenantCtxKey{}, t)
			ctx = logpkg.With(ctx, zap.String("tenant", t.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
