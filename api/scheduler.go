/*
scheduler.go - Periodic overdue-rent check

PURPOSE:
  After the judgment, current rent must be paid on time. The scheduler
  periodically runs the monitor on every post-judgment dossier and logs the
  ones with rent overdue, so the creditor can send a formal notice.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Checks as of today; results are kept for the last run only
  - Never modifies dossiers: the check is read-only

CONFIGURATION:
  - CheckInterval: How often to check (default: 24 hours)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewOverdueScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: Overdue, ListOverdue endpoint (same check on demand)
  - lease/monitor.go: Monitor
*/
package api

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// OverdueScheduler checks monitored dossiers for overdue rent.
type OverdueScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	last    []OverdueDTO
	lastRun time.Time
}

// NewOverdueScheduler creates a new scheduler.
func NewOverdueScheduler(handler *Handler) *OverdueScheduler {
	return &OverdueScheduler{
		Handler:       handler,
		CheckInterval: 24 * time.Hour,
		Enabled:       true,
	}
}

// Start begins the scheduler.
func (s *OverdueScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		log.Info("overdue scheduler disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	log.WithFields(log.Fields{"interval": s.CheckInterval}).Info("overdue scheduler started")
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *OverdueScheduler) Stop() {
	s.mu.Lock()
	if s.ticker == nil {
		s.mu.Unlock()
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.mu.Unlock()

	s.wg.Wait()
	log.Info("overdue scheduler stopped")
}

func (s *OverdueScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Run immediately on start
	s.Check(context.Background(), s.Handler.Now())

	for {
		select {
		case <-ticker.C:
			s.Check(context.Background(), s.Handler.Now())
		case <-stop:
			return
		}
	}
}

// Check runs one pass as of a date and logs every dossier in arrears.
func (s *OverdueScheduler) Check(ctx context.Context, asOf generic.Date) []OverdueDTO {
	alerts, err := s.Handler.Overdue(ctx, asOf)
	if err != nil {
		log.WithError(err).Error("overdue check failed")
		return nil
	}

	for _, a := range alerts {
		log.WithFields(log.Fields{
			"dossier":      a.DossierID,
			"name":         a.Name,
			"overdue":      a.TotalOverdue,
			"oldest_due":   a.OldestDueDate,
			"days_overdue": a.DaysOverdue,
		}).Warn("post-judgment rent overdue")
	}
	log.WithFields(log.Fields{"as_of": asOf.String(), "in_arrears": len(alerts)}).Info("overdue check completed")

	s.mu.Lock()
	s.last = alerts
	s.lastRun = time.Now()
	s.mu.Unlock()
	return alerts
}

// Last returns the alerts of the most recent check and when it ran.
func (s *OverdueScheduler) Last() ([]OverdueDTO, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastRun
}
