// Package authz decides which roles may reach the admin dashboard.
package authz

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// Engine evaluates the admin-capability policy.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine prepares the policy for evaluation.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.portal_authz.allow"),
		rego.Module("portal_authz.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// IsAdminCapable reports whether the role may reach the dashboard. The role
// is normalized before evaluation so backend spellings like
// "Talent Acquisition" are accepted.
func (e *Engine) IsAdminCapable(ctx context.Context, role string) (bool, error) {
	input := map[string]interface{}{
		"role": string(domain.NormalizeRole(role)),
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}

	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, nil
	}
	return allowed, nil
}

// DefaultPolicy is the admin-capability allow-set. Roles that contain
// "admin" (e.g. super_admin) also pass, matching the backend's check.
const DefaultPolicy = `
package portal_authz

default allow = false

admin_roles = {"admin", "talent_acquisition", "hr"}

allow {
	admin_roles[input.role]
}

allow {
	contains(input.role, "admin")
}
`
