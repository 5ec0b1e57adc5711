package periodoverride

import (
	"context"
)

// Service defines business logic for period override management.
type Service interface {
	// Get retrieves the override for an employee-period tuple
	Get(ctx context.Context, req GetRequest) (Response, error)

	// Save upserts an override, guarding against concurrent edits
	Save(ctx context.Context, req SaveRequest) (Response, error)

	// Delete removes an override by ID
	Delete(ctx context.Context, id string) error
}
