package periodoverride

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/periodoverride"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	repo         periodoverride.Repository
	employeeRepo employee.Repository
}

func NewService(repo periodoverride.Repository, employeeRepo employee.Repository) periodoverride.Service {
	return &ServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
	}
}

func companyFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// Get implements periodoverride.Service.
func (s *ServiceImpl) Get(ctx context.Context, req periodoverride.GetRequest) (periodoverride.Response, error) {
	if err := req.Validate(); err != nil {
		return periodoverride.Response{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return periodoverride.Response{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	override, err := s.repo.Get(ctx, req.EmployeeID, companyID, start, end)
	if err != nil {
		return periodoverride.Response{}, err
	}

	return mapResponse(override), nil
}

// Save implements periodoverride.Service. A stale expected_updated_at
// surfaces ErrPeriodOverrideConflict so the operator refetches instead
// of silently clobbering a concurrent edit.
func (s *ServiceImpl) Save(ctx context.Context, req periodoverride.SaveRequest) (periodoverride.Response, error) {
	if err := req.Validate(); err != nil {
		return periodoverride.Response{}, err
	}

	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return periodoverride.Response{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return periodoverride.Response{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	var expectedUpdatedAt *time.Time
	if req.ExpectedUpdatedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ExpectedUpdatedAt)
		if err != nil {
			return periodoverride.Response{}, validator.ValidationErrors{{
				Field:   "expected_updated_at",
				Message: "expected_updated_at must be an RFC3339 timestamp",
			}}
		}
		expectedUpdatedAt = &parsed
	}

	override := periodoverride.PeriodOverride{
		EmployeeID:  req.EmployeeID,
		CompanyID:   companyID,
		PeriodStart: start,
		PeriodEnd:   end,

		OverrideRegularHours:     req.OverrideRegularHours,
		OverrideOTHours:          req.OverrideOTHours,
		OverrideWeekendOTHours:   req.OverrideWeekendOTHours,
		OverrideStatHolidayHours: req.OverrideStatHolidayHours,
		Reason:                   req.Reason,

		PeriodNumber: req.PeriodNumber,
		Year:         req.Year,
	}

	saved, err := s.repo.Upsert(ctx, override, expectedUpdatedAt)
	if err != nil {
		return periodoverride.Response{}, err
	}

	return mapResponse(saved), nil
}

// Delete implements periodoverride.Service.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyFromClaims(ctx)
	if err != nil {
		return err
	}

	if !validator.IsValidUUID(id) {
		return periodoverride.ErrPeriodOverrideNotFound
	}

	return s.repo.Delete(ctx, id, companyID)
}

func formatDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func mapResponse(override periodoverride.PeriodOverride) periodoverride.Response {
	return periodoverride.Response{
		ID:          override.ID,
		EmployeeID:  override.EmployeeID,
		PeriodStart: override.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   override.PeriodEnd.Format("2006-01-02"),

		OverrideRegularHours:     formatDecimalPtr(override.OverrideRegularHours),
		OverrideOTHours:          formatDecimalPtr(override.OverrideOTHours),
		OverrideWeekendOTHours:   formatDecimalPtr(override.OverrideWeekendOTHours),
		OverrideStatHolidayHours: formatDecimalPtr(override.OverrideStatHolidayHours),
		Reason:                   override.Reason,

		PeriodNumber: override.PeriodNumber,
		Year:         override.Year,

		CreatedAt: override.CreatedAt.Format(time.RFC3339),
		UpdatedAt: override.UpdatedAt.Format(time.RFC3339),
	}
}
