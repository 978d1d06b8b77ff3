package app

import (
	"context"
	"strings"
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/employer"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
	"github.com/klimenko666/dptmptch/internal/integration/mailqueue"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// VacancyService is the lifecycle engine: it validates payloads, owns
// the status state machine and fires best-effort mail notifications.
type VacancyService struct {
	vacancies vacancy.Repository
	employers employer.Repository
	mail      mailqueue.Publisher
	logger    Logger
}

func NewVacancyService(vacancies vacancy.Repository, employers employer.Repository, mail mailqueue.Publisher, logger Logger) *VacancyService {
	return &VacancyService{vacancies: vacancies, employers: employers, mail: mail, logger: logger}
}

func (s *VacancyService) Create(ctx context.Context, employerID common.UUID, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	owner, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	v.EmployerID = employerID
	v.Status = vacancy.StatusOpen
	if err := validateVacancy(v); err != nil {
		return nil, err
	}
	created, err := s.vacancies.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	s.notify("creation", func(ctx context.Context) error {
		return s.mail.VacancyCreated(ctx, *owner, *created)
	})
	return created, nil
}

func (s *VacancyService) Update(ctx context.Context, employerID common.UUID, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, employerID, v.ID)
	if err != nil {
		return nil, err
	}
	v.EmployerID = employerID
	v.Status = current.Status
	v.CreatedAt = current.CreatedAt
	if err := validateVacancy(v); err != nil {
		return nil, err
	}
	return s.vacancies.Update(ctx, v)
}

// UpdateStatus is the generic manual transition path. Archived is never
// a legal target here and an archived vacancy never a legal source; the
// archive and restore operations cover those moves.
func (s *VacancyService) UpdateStatus(ctx context.Context, employerID, vacancyID common.UUID, status vacancy.Status) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, employerID, vacancyID)
	if err != nil {
		return nil, err
	}
	target := vacancy.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !target.Valid() {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be open, reserved, closed, or archived"})
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, common.NewError(common.CodeInvalidTransition,
			"cannot change status from "+string(current.Status)+" to "+string(target), nil)
	}
	if err := s.vacancies.SetStatus(ctx, vacancyID, target); err != nil {
		return nil, err
	}
	current.Status = target
	if target == vacancy.StatusClosed {
		snapshot := *current
		s.notify("closure", func(ctx context.Context) error {
			owner, err := s.employers.GetByID(ctx, employerID)
			if err != nil {
				return err
			}
			return s.mail.VacancyClosed(ctx, *owner, snapshot)
		})
	}
	return current, nil
}

func (s *VacancyService) Archive(ctx context.Context, employerID, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, employerID, vacancyID)
	if err != nil {
		return nil, err
	}
	if current.Status == vacancy.StatusArchived {
		return nil, common.NewError(common.CodeInvalidTransition, "vacancy is already archived", nil)
	}
	if err := s.vacancies.SetStatus(ctx, vacancyID, vacancy.StatusArchived); err != nil {
		return nil, err
	}
	current.Status = vacancy.StatusArchived
	return current, nil
}

func (s *VacancyService) Restore(ctx context.Context, employerID, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, employerID, vacancyID)
	if err != nil {
		return nil, err
	}
	restored, err := s.vacancies.RestoreArchived(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if !restored {
		return nil, common.NewError(common.CodeNotFound, "vacancy is not archived", nil)
	}
	current.Status = vacancy.StatusOpen
	return current, nil
}

func (s *VacancyService) Delete(ctx context.Context, employerID, vacancyID common.UUID) error {
	if _, err := s.ownedVacancy(ctx, employerID, vacancyID); err != nil {
		return err
	}
	return s.vacancies.Delete(ctx, vacancyID)
}

func (s *VacancyService) Get(ctx context.Context, id common.UUID) (*vacancy.WithEmployer, error) {
	return s.vacancies.GetPublicByID(ctx, id)
}

func (s *VacancyService) GetOwned(ctx context.Context, employerID, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	return s.ownedVacancy(ctx, employerID, vacancyID)
}

func (s *VacancyService) ListPublic(ctx context.Context, filter vacancy.Filter) ([]vacancy.WithEmployer, error) {
	return s.vacancies.ListPublic(ctx, filter)
}

func (s *VacancyService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]vacancy.Vacancy, error) {
	return s.vacancies.ListByEmployer(ctx, employerID)
}

func (s *VacancyService) ListArchived(ctx context.Context, employerID common.UUID) ([]vacancy.Vacancy, error) {
	return s.vacancies.ListArchivedByEmployer(ctx, employerID)
}

func (s *VacancyService) ownedVacancy(ctx context.Context, employerID, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	current, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if current.EmployerID != employerID {
		return nil, common.NewError(common.CodeForbidden, "vacancy belongs to another employer", nil)
	}
	return current, nil
}

// notify publishes a mail event without ever blocking or failing the
// request that triggered it.
func (s *VacancyService) notify(what string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			s.logger.Error("failed to publish " + what + " notification: " + err.Error())
		}
	}()
}

// validateVacancy applies the gate rules in order, stopping at the
// first violation.
func validateVacancy(v vacancy.Vacancy) error {
	switch {
	case v.Subject == "":
		return common.NewValidationError("subject is required", nil)
	case v.WorkType == "":
		return common.NewValidationError("work type is required", nil)
	case v.StartDate.IsZero():
		return common.NewValidationError("start date is required", nil)
	case v.EndDate.IsZero():
		return common.NewValidationError("end date is required", nil)
	case v.ScheduleFrom == "":
		return common.NewValidationError("schedule start is required", nil)
	case v.ScheduleTo == "":
		return common.NewValidationError("schedule end is required", nil)
	case v.SalaryAmount == 0:
		return common.NewValidationError("salary amount is required", nil)
	case v.SalaryType == "":
		return common.NewValidationError("salary type is required", nil)
	case v.Description == "":
		return common.NewValidationError("description is required", nil)
	case v.ContactPhone == "":
		return common.NewValidationError("contact phone is required", nil)
	}
	if !v.WorkType.Valid() {
		return common.NewValidationError("invalid work type", map[string]string{"work_type": "work type must be substitution or temporary"})
	}
	if !v.SalaryType.Valid() {
		return common.NewValidationError("invalid salary type", map[string]string{"salary_type": "salary type must be monthly, hourly, daily, weekly, per_lesson, or per_shift"})
	}
	if v.SalaryAmount <= 0 {
		return common.NewValidationError("salary amount must be a positive number", nil)
	}
	if v.StartDate.Before(common.Today()) {
		return common.NewValidationError("start date cannot be in the past", nil)
	}
	if v.EndDate.Before(v.StartDate) {
		return common.NewValidationError("end date cannot be before start date", nil)
	}
	if v.WorkDays != nil {
		if len(v.WorkDays) == 0 {
			return common.NewValidationError("work days cannot be empty", nil)
		}
		for _, day := range v.WorkDays {
			if !vacancy.ValidWeekday(day) {
				return common.NewValidationError("invalid work day", map[string]string{"work_days": day + " is not a weekday"})
			}
		}
	}
	return nil
}
