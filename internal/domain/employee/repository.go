package employee

import "context"

// Repository is the read-only directory lookup the engine needs for
// report and list display.
type Repository interface {
	// GetByID retrieves one employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// NamesByIDs returns a display-name map for the given employee IDs
	NamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error)

	// ListActiveIDs returns the IDs of active employees in the company
	ListActiveIDs(ctx context.Context, companyID string) ([]string, error)
}
