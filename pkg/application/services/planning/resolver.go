package planning

import (
	"github.com/cwaltman/replen/pkg/domain/entities"
)

// PolicyResolver maps a SKU's matrix cell to its effective replenishment
// policy. The table is fixed for the whole run; a cell with no registered
// policy resolves to the conservative default rather than failing.
type PolicyResolver struct {
	policies map[entities.MatrixCell]entities.ClassificationPolicy
}

// NewPolicyResolver builds a resolver from the active policy rows
func NewPolicyResolver(policies []*entities.ClassificationPolicy) *PolicyResolver {
	table := make(map[entities.MatrixCell]entities.ClassificationPolicy, len(policies))
	for _, p := range policies {
		if p == nil || p.MatrixCell == entities.CellUnknown {
			continue
		}
		table[p.MatrixCell] = *p
	}
	return &PolicyResolver{policies: table}
}

// NewDefaultPolicyResolver builds a resolver preloaded with the recommended
// nine-grid policy set
func NewDefaultPolicyResolver() *PolicyResolver {
	defaults := entities.DefaultPolicies()
	ptrs := make([]*entities.ClassificationPolicy, len(defaults))
	for i := range defaults {
		ptrs[i] = &defaults[i]
	}
	return NewPolicyResolver(ptrs)
}

// Resolve returns the effective policy for a cell. The second return is
// false when no policy was registered and the default was applied; callers
// surface that as an unknown-policy warning, never as a failure.
func (r *PolicyResolver) Resolve(cell entities.MatrixCell) (entities.ClassificationPolicy, bool) {
	if policy, ok := r.policies[cell]; ok {
		return policy, true
	}
	return entities.DefaultPolicy(cell), false
}
