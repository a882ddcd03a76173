package repositories

import (
	"context"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// PolicyRepository provides access to the classification policy table
type PolicyRepository interface {
	GetPolicy(ctx context.Context, cell entities.MatrixCell) (*entities.ClassificationPolicy, error)
	GetAllPolicies(ctx context.Context) ([]*entities.ClassificationPolicy, error)
	UpsertPolicy(ctx context.Context, policy *entities.ClassificationPolicy) error
}
