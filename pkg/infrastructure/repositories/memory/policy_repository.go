package memory

import (
	"context"
	"fmt"

	"github.com/cwaltman/replen/pkg/domain/entities"
	"github.com/cwaltman/replen/pkg/domain/repositories"
)

// PolicyRepository provides in-memory classification policy storage
type PolicyRepository struct {
	policies map[entities.MatrixCell]entities.ClassificationPolicy
}

// NewPolicyRepository creates an empty in-memory policy repository
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{
		policies: make(map[entities.MatrixCell]entities.ClassificationPolicy),
	}
}

// NewSeededPolicyRepository creates a policy repository preloaded with the
// recommended nine-grid policy set
func NewSeededPolicyRepository() *PolicyRepository {
	r := NewPolicyRepository()
	for _, policy := range entities.DefaultPolicies() {
		r.policies[policy.MatrixCell] = policy
	}
	return r
}

// Verify interface compliance
var _ repositories.PolicyRepository = (*PolicyRepository)(nil)

// GetPolicy returns the active policy for a matrix cell
func (r *PolicyRepository) GetPolicy(_ context.Context, cell entities.MatrixCell) (*entities.ClassificationPolicy, error) {
	policy, exists := r.policies[cell]
	if !exists {
		return nil, fmt.Errorf("no policy registered for cell %s", cell)
	}
	return &policy, nil
}

// GetAllPolicies returns every registered policy in grid order
func (r *PolicyRepository) GetAllPolicies(_ context.Context) ([]*entities.ClassificationPolicy, error) {
	policies := make([]*entities.ClassificationPolicy, 0, len(r.policies))
	for _, cell := range entities.AllMatrixCells {
		if policy, exists := r.policies[cell]; exists {
			p := policy
			policies = append(policies, &p)
		}
	}
	return policies, nil
}

// UpsertPolicy registers or replaces the policy for a cell
func (r *PolicyRepository) UpsertPolicy(_ context.Context, policy *entities.ClassificationPolicy) error {
	if policy.MatrixCell == entities.CellUnknown {
		return fmt.Errorf("cannot register a policy for an unknown cell")
	}
	r.policies[policy.MatrixCell] = *policy
	return nil
}
