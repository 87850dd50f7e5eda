package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Cadence names one of the fixed fire patterns. Fire times are constants
// chosen to land in the quiet hours of the configured zone.
type Cadence int

const (
	// Hourly fires at minute 30 of every hour.
	Hourly Cadence = iota
	// Daily fires at 06:00.
	Daily
	// TwiceWeekly fires Monday and Thursday at 06:00.
	TwiceWeekly
	// Weekly fires Sunday at 03:00.
	Weekly
	// Monthly fires on the 1st at 02:00.
	Monthly
)

func (c Cadence) String() string {
	switch c {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case TwiceWeekly:
		return "twice_weekly"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// JobFunc is one scheduled unit of work. Errors are logged, not fatal.
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	cadence Cadence
	fn      JobFunc
}

// Scheduler drives registered jobs at their next fire time. Each job runs
// in its own goroutine loop so a slow tier-3 run never delays the hourly
// health probe.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	loc     *time.Location
	logger  *logrus.Logger
	now     func() time.Time
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	running bool
}

func New(loc *time.Location, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// Register adds a job. Registration after Start has no effect on the
// running loops; register everything first.
func (s *Scheduler) Register(name string, cadence Cadence, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{name: name, cadence: cadence, fn: fn})
}

// Start launches one loop per registered job. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Warn("scheduler already running, ignoring start")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	// Fresh group per Start so a Stop still waiting on the previous
	// generation never races an Add for the next one.
	wg := &sync.WaitGroup{}
	s.wg = wg

	for _, j := range s.jobs {
		wg.Add(1)
		go s.run(ctx, wg, j)
	}
	s.logger.Infof("scheduler started with %d jobs in %s", len(s.jobs), s.loc)
}

// Stop cancels all job loops, waits for in-flight runs to return, and
// clears the registrations so a later Start begins from a clean slate.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	wg := s.wg
	s.mu.Unlock()

	wg.Wait()

	s.mu.Lock()
	s.jobs = nil
	s.mu.Unlock()
	s.logger.Info("scheduler stopped")
}

// JobStatus describes one registered job for the status endpoint.
type JobStatus struct {
	Name     string    `json:"name"`
	Cadence  string    `json:"cadence"`
	NextFire time.Time `json:"next_fire"`
}

// Status snapshots the scheduler for operators.
type Status struct {
	Running  bool        `json:"running"`
	Timezone string      `json:"timezone"`
	Jobs     []JobStatus `json:"jobs"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.loc)
	st := Status{Running: s.running, Timezone: s.loc.String()}
	for _, j := range s.jobs {
		st.Jobs = append(st.Jobs, JobStatus{
			Name:     j.name,
			Cadence:  j.cadence.String(),
			NextFire: NextFire(now, j.cadence),
		})
	}
	return st
}

func (s *Scheduler) run(ctx context.Context, wg *sync.WaitGroup, j *job) {
	defer wg.Done()
	for {
		next := NextFire(s.now().In(s.loc), j.cadence)
		timer := time.NewTimer(time.Until(next))
		s.logger.WithFields(logrus.Fields{
			"job":  j.name,
			"next": next.Format(time.RFC3339),
		}).Debug("job scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.invoke(ctx, j)
		}
	}
}

// invoke runs one job, isolating panics so a broken job cannot kill its loop.
func (s *Scheduler) invoke(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("job", j.name).Errorf("job panicked: %v", r)
		}
	}()

	start := s.now()
	if err := j.fn(ctx); err != nil {
		s.logger.WithError(err).WithField("job", j.name).Error("job failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"job":      j.name,
		"duration": s.now().Sub(start).String(),
	}).Info("job finished")
}

// NextFire returns the first fire time strictly after now for the cadence,
// in now's location.
func NextFire(now time.Time, cadence Cadence) time.Time {
	switch cadence {
	case Hourly:
		next := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 30, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(time.Hour)
		}
		return next

	case Daily:
		next := at(now, 6, 0)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next

	case TwiceWeekly:
		// Monday and Thursday mornings split the week roughly in half.
		for days := 0; ; days++ {
			day := now.AddDate(0, 0, days)
			if day.Weekday() != time.Monday && day.Weekday() != time.Thursday {
				continue
			}
			next := at(day, 6, 0)
			if next.After(now) {
				return next
			}
		}

	case Weekly:
		for days := 0; ; days++ {
			day := now.AddDate(0, 0, days)
			if day.Weekday() != time.Sunday {
				continue
			}
			next := at(day, 3, 0)
			if next.After(now) {
				return next
			}
		}

	case Monthly:
		next := time.Date(now.Year(), now.Month(), 1, 2, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 1, 0)
		}
		return next

	default:
		return now.Add(time.Hour)
	}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}
