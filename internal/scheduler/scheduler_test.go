package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load zone %s: %v", name, err)
	}
	return loc
}

func TestNextFire(t *testing.T) {
	loc := mustZone(t, "Asia/Seoul")
	at := func(y int, m time.Month, d, hh, mm int) time.Time {
		return time.Date(y, m, d, hh, mm, 0, 0, loc)
	}

	tests := []struct {
		name    string
		cadence Cadence
		now     time.Time
		want    time.Time
	}{
		{"hourly before half past", Hourly, at(2024, time.June, 3, 10, 15), at(2024, time.June, 3, 10, 30)},
		{"hourly after half past", Hourly, at(2024, time.June, 3, 10, 45), at(2024, time.June, 3, 11, 30)},
		{"hourly exactly on fire time", Hourly, at(2024, time.June, 3, 10, 30), at(2024, time.June, 3, 11, 30)},

		{"daily before six", Daily, at(2024, time.June, 3, 5, 0), at(2024, time.June, 3, 6, 0)},
		{"daily after six", Daily, at(2024, time.June, 3, 7, 0), at(2024, time.June, 4, 6, 0)},

		// 2024-06-03 is a Monday.
		{"twice weekly monday morning", TwiceWeekly, at(2024, time.June, 3, 5, 0), at(2024, time.June, 3, 6, 0)},
		{"twice weekly monday evening", TwiceWeekly, at(2024, time.June, 3, 12, 0), at(2024, time.June, 6, 6, 0)},
		{"twice weekly friday", TwiceWeekly, at(2024, time.June, 7, 12, 0), at(2024, time.June, 10, 6, 0)},

		// 2024-06-09 is a Sunday.
		{"weekly midweek", Weekly, at(2024, time.June, 5, 12, 0), at(2024, time.June, 9, 3, 0)},
		{"weekly sunday after fire", Weekly, at(2024, time.June, 9, 4, 0), at(2024, time.June, 16, 3, 0)},

		{"monthly midmonth", Monthly, at(2024, time.June, 15, 12, 0), at(2024, time.July, 1, 2, 0)},
		{"monthly first before fire", Monthly, at(2024, time.June, 1, 1, 0), at(2024, time.June, 1, 2, 0)},
		{"monthly december wraps year", Monthly, at(2024, time.December, 15, 12, 0), at(2025, time.January, 1, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextFire(tt.now, tt.cadence)
			if !got.Equal(tt.want) {
				t.Errorf("NextFire = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextFire_AlwaysInFuture(t *testing.T) {
	loc := mustZone(t, "Asia/Seoul")
	now := time.Date(2024, time.June, 3, 6, 0, 0, 0, loc)

	for _, cadence := range []Cadence{Hourly, Daily, TwiceWeekly, Weekly, Monthly} {
		if next := NextFire(now, cadence); !next.After(now) {
			t.Errorf("NextFire(%s) = %v, not after now", cadence, next)
		}
	}
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	s := New(time.UTC, logrus.New())
	s.Register("noop", Hourly, func(context.Context) error { return nil })

	s.Start()
	s.Start() // second start must be ignored
	if !s.Status().Running {
		t.Error("Status().Running = false after Start")
	}

	s.Stop()
	s.Stop() // second stop must be a no-op

	st := s.Status()
	if st.Running {
		t.Error("Status().Running = true after Stop")
	}
	if len(st.Jobs) != 0 {
		t.Errorf("jobs not cleared by Stop: %v", st.Jobs)
	}
}

func TestScheduler_ConcurrentStartStop(t *testing.T) {
	s := New(time.UTC, logrus.New())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				s.Register("noop", Hourly, func(context.Context) error { return nil })
				s.Start()
				s.Stop()
			}
		}()
	}
	wg.Wait()

	s.Stop()
	if s.Status().Running {
		t.Error("Status().Running = true after final Stop")
	}
}

func TestScheduler_InvokeIsolatesPanic(t *testing.T) {
	s := New(time.UTC, logrus.New())

	var ran atomic.Bool
	s.invoke(context.Background(), &job{name: "bad", fn: func(context.Context) error {
		panic("boom")
	}})
	s.invoke(context.Background(), &job{name: "good", fn: func(context.Context) error {
		ran.Store(true)
		return nil
	}})

	if !ran.Load() {
		t.Error("job after a panicking job did not run")
	}
}
