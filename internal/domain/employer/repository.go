package employer

import (
	"context"

	"github.com/klimenko666/dptmptch/internal/common"
)

type Repository interface {
	Create(ctx context.Context, e Employer) (*Employer, error)
	Update(ctx context.Context, e Employer) (*Employer, error)
	GetByID(ctx context.Context, id common.UUID) (*Employer, error)
	GetByEmail(ctx context.Context, email string) (*Employer, error)
	// GetByVacancyID resolves the employer owning the given vacancy,
	// used by the public company page.
	GetByVacancyID(ctx context.Context, vacancyID common.UUID) (*Employer, error)
}
