package employee

// Employee is the directory entry the engine reads for display names.
// Employee CRUD lives in the surrounding HR dashboard, not here.
type Employee struct {
	ID        string
	CompanyID string
	FullName  string
	Code      *string
	IsActive  bool
}
