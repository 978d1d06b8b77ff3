package app

import (
	"context"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/employer"
)

type EmployerService struct {
	employers employer.Repository
}

func NewEmployerService(employers employer.Repository) *EmployerService {
	return &EmployerService{employers: employers}
}

func (s *EmployerService) Get(ctx context.Context, id common.UUID) (*employer.Employer, error) {
	return s.employers.GetByID(ctx, id)
}

// GetByVacancy serves the public company page: the employer snapshot
// for the posting a candidate is looking at.
func (s *EmployerService) GetByVacancy(ctx context.Context, vacancyID common.UUID) (*employer.Employer, error) {
	return s.employers.GetByVacancyID(ctx, vacancyID)
}

type ProfileInput struct {
	OrganizationName string
	ContactName      string
	Phone            string
	Email            string
	City             string
	Address          string
	Description      string
}

func (s *EmployerService) UpdateProfile(ctx context.Context, id common.UUID, input ProfileInput) (*employer.Employer, error) {
	switch {
	case input.OrganizationName == "":
		return nil, common.NewValidationError("organization name is required", nil)
	case input.ContactName == "":
		return nil, common.NewValidationError("contact name is required", nil)
	case input.Phone == "":
		return nil, common.NewValidationError("phone is required", nil)
	case input.Email == "":
		return nil, common.NewValidationError("email is required", nil)
	}
	current, err := s.employers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != current.Email {
		if _, err := s.employers.GetByEmail(ctx, input.Email); err == nil {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		} else if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
	}
	current.OrganizationName = input.OrganizationName
	current.ContactName = input.ContactName
	current.Phone = input.Phone
	current.Email = input.Email
	current.City = input.City
	current.Address = input.Address
	current.Description = input.Description
	return s.employers.Update(ctx, *current)
}
