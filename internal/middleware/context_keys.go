package middleware

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
)

// principalKey is the key used to store the authenticated principal in the
// request context.
const principalKey = contextKey("principal")

// GetPrincipalFromCtx retrieves the authenticated principal from the context.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}
