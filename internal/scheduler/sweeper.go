// Package scheduler runs the recurring housekeeping job that closes out
// overdue todos. It talks to the store directly and never blocks request
// handling; a failed run is logged and forgotten until the next tick.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"todo-api/internal/domain/repository"
)

// Sweeper periodically marks every overdue, incomplete todo as completed.
type Sweeper struct {
	repo     repository.TodoRepository
	interval time.Duration
	logger   *logrus.Logger

	// now is swappable in tests
	now func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func New(repo repository.TodoRepository, interval time.Duration, logger *logrus.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately so a
// restarted process catches up on ticks it missed while down.
func (s *Sweeper) Start() {
	go s.run()
}

// Stop terminates the loop and waits for an in-flight sweep to finish.
// Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	s.logger.WithField("interval", s.interval.String()).Info("expiry sweeper started")
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			s.logger.Info("expiry sweeper stopped")
			return
		}
	}
}

// sweep performs one bulk conditional update. Errors are logged and
// swallowed; the next tick proceeds regardless.
func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.repo.CompleteOverdue(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("expired todos cleanup failed")
		return
	}
	s.logger.WithField("updated", count).Info("expired todos cleanup")
}
