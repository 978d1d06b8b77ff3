package app

import (
	"context"
	"fmt"
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
)

// SchemaInitializer brings up the store schema when the sweep finds the
// store uninitialized.
type SchemaInitializer func(ctx context.Context) error

// SweepRecorder observes how many rows each sweep archived.
type SweepRecorder interface {
	AddArchived(n int64)
}

// Archiver is the background sweep that force-archives postings whose
// end date has passed. It runs once at startup and then on a fixed
// interval; each run is idempotent.
type Archiver struct {
	vacancies  vacancy.Repository
	initSchema SchemaInitializer
	recorder   SweepRecorder
	logger     Logger
	interval   time.Duration
}

func NewArchiver(vacancies vacancy.Repository, initSchema SchemaInitializer, recorder SweepRecorder, logger Logger, interval time.Duration) *Archiver {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Archiver{vacancies: vacancies, initSchema: initSchema, recorder: recorder, logger: logger, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled. Errors never stop
// the loop; the next tick simply tries again.
func (a *Archiver) Start(ctx context.Context) {
	go func() {
		a.sweep(ctx)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.sweep(ctx)
			}
		}
	}()
}

func (a *Archiver) sweep(ctx context.Context) {
	changed, err := a.RunOnce(ctx)
	if err != nil {
		a.logger.Error("archival sweep failed: " + err.Error())
		return
	}
	if changed > 0 {
		a.logger.Info(fmt.Sprintf("archival sweep moved %d expired vacancies to the archive", changed))
	}
}

// RunOnce archives everything expired before today and reports the row
// count. When the store is uninitialized it creates the schema and
// retries exactly once.
func (a *Archiver) RunOnce(ctx context.Context) (int64, error) {
	changed, err := a.vacancies.ArchiveExpired(ctx, common.Today())
	if err != nil && common.Is(err, common.CodeUnavailable) && a.initSchema != nil {
		if initErr := a.initSchema(ctx); initErr != nil {
			return 0, fmt.Errorf("store init during sweep: %w", initErr)
		}
		changed, err = a.vacancies.ArchiveExpired(ctx, common.Today())
	}
	if err != nil {
		return 0, err
	}
	if a.recorder != nil && changed > 0 {
		a.recorder.AddArchived(changed)
	}
	return changed, nil
}
