package jobs

import (
	"errors"
	"testing"
	"time"
)

type fakePurger struct {
	calls   int
	maxIdle time.Duration
}

func (f *fakePurger) PurgeIdle(maxIdle time.Duration) int {
	f.calls++
	f.maxIdle = maxIdle
	return 2
}

func TestPurgeDrafts(t *testing.T) {
	p := &fakePurger{}
	PurgeDrafts(p, 3*time.Hour)()

	if p.calls != 1 || p.maxIdle != 3*time.Hour {
		t.Errorf("unexpected purge call %+v", p)
	}
}

func TestCleanSessions(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)
	var got time.Time
	CleanSessions(func(now time.Time) (int64, error) {
		got = now
		return 1, nil
	}, func() time.Time { return fixed })()

	if !got.Equal(fixed) {
		t.Errorf("expected cleaner to receive %v, got %v", fixed, got)
	}

	// errors are logged, not propagated
	CleanSessions(func(time.Time) (int64, error) { return 0, errors.New("db down") }, time.Now)()
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := Config{DraftPurgeSchedule: "not a schedule", SessionCleanupSchedule: "0 3 * * *"}
	if _, err := Start(cfg, &fakePurger{}, func(time.Time) (int64, error) { return 0, nil }); err == nil {
		t.Error("expected error for invalid schedule")
	}

	cfg.DraftPurgeSchedule = "*/30 * * * *"
	c, err := Start(cfg, &fakePurger{}, func(time.Time) (int64, error) { return 0, nil })
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(c.Entries()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(c.Entries()))
	}
	c.Stop()
}
