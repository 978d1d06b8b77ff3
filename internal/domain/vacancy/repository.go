package vacancy

import (
	"context"

	"github.com/klimenko666/dptmptch/internal/common"
)

// Filter is the conjunctive predicate set for the public listing.
// Zero values mean "not filtered".
type Filter struct {
	Subject   string
	StartDate common.Date // vacancies starting on or after
	EndDate   common.Date // vacancies ending on or before
	MinSalary int
}

type Repository interface {
	Create(ctx context.Context, v Vacancy) (*Vacancy, error)
	Update(ctx context.Context, v Vacancy) (*Vacancy, error)
	SetStatus(ctx context.Context, id common.UUID, status Status) error
	// RestoreArchived moves an archived vacancy back to open. It reports
	// false when the vacancy does not exist or is not currently archived.
	RestoreArchived(ctx context.Context, id common.UUID) (bool, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Vacancy, error)
	GetPublicByID(ctx context.Context, id common.UUID) (*WithEmployer, error)
	ListPublic(ctx context.Context, filter Filter) ([]WithEmployer, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Vacancy, error)
	ListArchivedByEmployer(ctx context.Context, employerID common.UUID) ([]Vacancy, error)
	// ArchiveExpired bulk-archives every non-archived vacancy whose end
	// date is strictly before the given date and reports rows changed.
	ArchiveExpired(ctx context.Context, before common.Date) (int64, error)
}
