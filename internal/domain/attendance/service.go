package attendance

import (
	"context"
	"io"
	"time"
)

// Service defines the reconciliation engine's operations over attendance
// records.
type Service interface {
	// List retrieves a pay period's records, resolved through the
	// override layer and padded with virtual zero-hour rows for days
	// without a stored record
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// Get retrieves a single resolved record by ID
	Get(ctx context.Context, id string) (RecordResponse, error)

	// Create stores one manually entered record
	Create(ctx context.Context, req CreateRequest) (RecordResponse, error)

	// UpdateOverrides edits the override layer of a record
	UpdateOverrides(ctx context.Context, req UpdateOverridesRequest) (RecordResponse, error)

	// Recalculate re-runs the calculator over a date range without
	// touching any override field
	Recalculate(ctx context.Context, req RecalculateRequest) (RecalcResult, error)

	// RecalculateOne re-runs the calculator for a single record
	RecalculateOne(ctx context.Context, id string) (RecordResponse, error)

	// PreviewImport classifies a CSV batch without writing anything
	PreviewImport(ctx context.Context, csv io.Reader) (PreviewResult, error)

	// ImportCSV imports a CSV batch; partial success is normal
	ImportCSV(ctx context.Context, csv io.Reader) (ImportResult, error)

	// DeleteByDateRange bulk-deletes records scoped to filters
	DeleteByDateRange(ctx context.Context, req DeleteRangeRequest) (DeleteRangeResult, error)

	// RecalculateForCompany is the cron entry point: same semantics as
	// Recalculate, with an explicit company scope instead of claims
	RecalculateForCompany(ctx context.Context, companyID string, start, end time.Time) (RecalcResult, error)
}
