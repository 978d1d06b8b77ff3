package vacancy

import (
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusReserved Status = "reserved"
	StatusClosed   Status = "closed"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusReserved, StatusClosed, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether the manual status-update path allows
// moving from s to target. Archiving and restoring have dedicated
// operations and are never reachable through here.
func (s Status) CanTransitionTo(target Status) bool {
	if s == StatusArchived || target == StatusArchived {
		return false
	}
	switch s {
	case StatusOpen:
		return target == StatusReserved || target == StatusClosed
	case StatusReserved:
		return target == StatusClosed || target == StatusOpen
	case StatusClosed:
		return target == StatusOpen
	}
	return false
}

type WorkType string

const (
	WorkTypeSubstitution WorkType = "substitution"
	WorkTypeTemporary    WorkType = "temporary"
)

func (w WorkType) Valid() bool {
	return w == WorkTypeSubstitution || w == WorkTypeTemporary
}

type SalaryType string

const (
	SalaryMonthly   SalaryType = "monthly"
	SalaryHourly    SalaryType = "hourly"
	SalaryDaily     SalaryType = "daily"
	SalaryWeekly    SalaryType = "weekly"
	SalaryPerLesson SalaryType = "per_lesson"
	SalaryPerShift  SalaryType = "per_shift"
)

func (s SalaryType) Valid() bool {
	switch s {
	case SalaryMonthly, SalaryHourly, SalaryDaily, SalaryWeekly, SalaryPerLesson, SalaryPerShift:
		return true
	}
	return false
}

var weekdays = map[string]struct{}{
	"monday":    {},
	"tuesday":   {},
	"wednesday": {},
	"thursday":  {},
	"friday":    {},
	"saturday":  {},
	"sunday":    {},
}

func ValidWeekday(token string) bool {
	_, ok := weekdays[token]
	return ok
}

type Vacancy struct {
	ID            common.UUID `json:"id"`
	EmployerID    common.UUID `json:"employer_id"`
	Subject       string      `json:"subject"`
	WorkType      WorkType    `json:"work_type"`
	StartDate     common.Date `json:"start_date"`
	EndDate       common.Date `json:"end_date"`
	ScheduleFrom  string      `json:"schedule_from"`
	ScheduleTo    string      `json:"schedule_to"`
	WorkDays      []string    `json:"work_days,omitempty"`
	SalaryAmount  int         `json:"salary_amount"`
	SalaryType    SalaryType  `json:"salary_type"`
	Address       string      `json:"address,omitempty"`
	Description   string      `json:"description"`
	ContactPhone  string      `json:"contact_phone"`
	ContactEmail  string      `json:"contact_email,omitempty"`
	ContactPerson string      `json:"contact_person,omitempty"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// WithEmployer joins a vacancy with the owning employer's public fields,
// the shape the public listing and detail pages consume. The credential
// never travels with it.
type WithEmployer struct {
	Vacancy
	OrganizationName string `json:"organization_name"`
	ContactName      string `json:"contact_name"`
	EmployerPhone    string `json:"employer_phone,omitempty"`
	EmployerEmail    string `json:"employer_email,omitempty"`
}
