package vacancy

import "testing"

func TestCanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusOpen:     {StatusReserved, StatusClosed},
		StatusReserved: {StatusClosed, StatusOpen},
		StatusClosed:   {StatusOpen},
		StatusArchived: {},
	}
	statuses := []Status{StatusOpen, StatusReserved, StatusClosed, StatusArchived}
	for _, from := range statuses {
		permitted := map[Status]bool{}
		for _, to := range allowed[from] {
			permitted[to] = true
		}
		for _, to := range statuses {
			if got := from.CanTransitionTo(to); got != permitted[to] {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, permitted[to])
			}
		}
	}
}

func TestEnumValidation(t *testing.T) {
	if Status("draft").Valid() {
		t.Error("draft is not a known status")
	}
	if !StatusReserved.Valid() {
		t.Error("reserved must be valid")
	}
	if WorkType("full_time").Valid() {
		t.Error("full_time is not a known work type")
	}
	if !SalaryPerLesson.Valid() {
		t.Error("per_lesson must be a valid salary type")
	}
	if ValidWeekday("Monday") {
		t.Error("weekday tokens are lowercase")
	}
	if !ValidWeekday("wednesday") {
		t.Error("wednesday must be accepted")
	}
}
