package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
)

type fakeRecorder struct {
	archived int64
}

func (r *fakeRecorder) AddArchived(n int64) { r.archived += n }

func seedExpired(t *testing.T, repo *fakeVacancyRepo, status vacancy.Status, end common.Date) common.UUID {
	t.Helper()
	v := validVacancy()
	v.EmployerID = common.NewUUID()
	v.EndDate = end
	created, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("seed vacancy: %v", err)
	}
	if err := repo.SetStatus(context.Background(), created.ID, status); err != nil {
		t.Fatalf("seed status: %v", err)
	}
	return created.ID
}

func TestSweepArchivesExpiredOnce(t *testing.T) {
	repo := newFakeVacancyRepo()
	recorder := &fakeRecorder{}
	archiver := NewArchiver(repo, nil, recorder, &testLogger{}, time.Hour)

	yesterday := common.Today().AddDays(-1)
	expiredOpen := seedExpired(t, repo, vacancy.StatusOpen, yesterday)
	expiredClosed := seedExpired(t, repo, vacancy.StatusClosed, yesterday)
	endingToday := seedExpired(t, repo, vacancy.StatusOpen, common.Today())
	alreadyArchived := seedExpired(t, repo, vacancy.StatusArchived, yesterday)

	changed, err := archiver.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 archived rows, got %d", changed)
	}
	for _, id := range []common.UUID{expiredOpen, expiredClosed, alreadyArchived} {
		stored, _ := repo.GetByID(context.Background(), id)
		if stored.Status != vacancy.StatusArchived {
			t.Fatalf("vacancy %s: expected archived, got %s", id, stored.Status)
		}
	}
	stored, _ := repo.GetByID(context.Background(), endingToday)
	if stored.Status != vacancy.StatusOpen {
		t.Fatalf("a vacancy ending today must stay open, got %s", stored.Status)
	}
	if recorder.archived != 2 {
		t.Fatalf("expected recorder to count 2, got %d", recorder.archived)
	}

	// A second pass over the same data finds nothing left to do.
	changed, err = archiver.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected idempotent sweep, got %d rows", changed)
	}
	if recorder.archived != 2 {
		t.Fatalf("recorder must not count empty sweeps, got %d", recorder.archived)
	}
}

func TestSweepInitializesStoreAndRetries(t *testing.T) {
	repo := newFakeVacancyRepo()
	repo.unavailable = true

	var initCalls int
	initSchema := func(ctx context.Context) error {
		initCalls++
		repo.mu.Lock()
		repo.unavailable = false
		repo.mu.Unlock()
		return nil
	}
	archiver := NewArchiver(repo, initSchema, nil, &testLogger{}, time.Hour)

	changed, err := archiver.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected empty store after init, got %d rows", changed)
	}
	if initCalls != 1 {
		t.Fatalf("expected one init call, got %d", initCalls)
	}

	// Once initialized the sweep never re-runs the initializer.
	if _, err := archiver.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if initCalls != 1 {
		t.Fatalf("initializer must not run again, got %d calls", initCalls)
	}
}

func TestSweepReportsInitFailure(t *testing.T) {
	repo := newFakeVacancyRepo()
	repo.unavailable = true
	initErr := errors.New("ddl rejected")
	archiver := NewArchiver(repo, func(ctx context.Context) error { return initErr }, nil, &testLogger{}, time.Hour)

	if _, err := archiver.RunOnce(context.Background()); !errors.Is(err, initErr) {
		t.Fatalf("expected the init error to surface, got %v", err)
	}
}

func TestSweepWithoutInitializerSurfacesUnavailable(t *testing.T) {
	repo := newFakeVacancyRepo()
	repo.unavailable = true
	archiver := NewArchiver(repo, nil, nil, &testLogger{}, time.Hour)

	if _, err := archiver.RunOnce(context.Background()); !common.Is(err, common.CodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
