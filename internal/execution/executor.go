package execution

import (
	"context"

	"gint/internal/domain"
)

// Executor runs a single test on the remote execution service and blocks
// until the remote run has finished.
type Executor interface {
	Run(ctx context.Context, organizationID string, test *domain.TestDefinition) (*domain.TestResult, error)
}
