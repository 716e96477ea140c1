package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
)

// DefaultSpec retries the live sheet every five minutes.
const DefaultSpec = "0 */5 * * * *"

// Warmer is satisfied by *service.ContentService.
type Warmer interface {
	Warm(ctx context.Context) ([]service.TableStatus, error)
}

type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	timeout time.Duration
	log     *zap.Logger
}

// NewScheduler parses spec (seconds field included) and registers the warm
// job. An empty spec means DefaultSpec.
func NewScheduler(spec string, warmer Warmer, timeout time.Duration, log *zap.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		warmer:  warmer,
		timeout: timeout,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("add warm job %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.log.Info("cron scheduler started")
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce warms every table. Memoized tables are not refetched.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	started := time.Now()
	statuses, err := s.warmer.Warm(ctx)
	if err != nil {
		s.log.Warn("warm job failed", zap.Error(err))
		return
	}

	live := 0
	for _, st := range statuses {
		if st.Source == service.SourceLive {
			live++
		}
	}
	s.log.Info("warm job completed",
		zap.Int("tables", len(statuses)),
		zap.Int("live", live),
		zap.Duration("took", time.Since(started)),
	)
}
