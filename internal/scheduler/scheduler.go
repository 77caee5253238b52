package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily usage report on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
}

func New(spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.Local)),
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetReportFunction sets the function invoked on each scheduled run.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.reportFunc == nil || s.spec == "" {
		log.Println("usage report schedule disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.reportFunc(s.ctx); err != nil {
			log.Printf("daily usage report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started, usage report at %q", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
