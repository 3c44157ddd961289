// Package jobs runs the periodic housekeeping of the server.
package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DraftPurger drops draft lists that have not been touched for maxIdle.
type DraftPurger interface {
	PurgeIdle(maxIdle time.Duration) int
}

// SessionCleaner deletes sessions that expired or were revoked before now.
type SessionCleaner func(now time.Time) (int64, error)

type Config struct {
	DraftPurgeSchedule     string
	DraftMaxIdle           time.Duration
	SessionCleanupSchedule string
	Location               *time.Location
}

// Start schedules both jobs and starts the cron runner. Callers stop it with
// Stop() on shutdown.
func Start(cfg Config, drafts DraftPurger, sessions SessionCleaner) (*cron.Cron, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.DraftPurgeSchedule, PurgeDrafts(drafts, cfg.DraftMaxIdle)); err != nil {
		return nil, fmt.Errorf("unable to schedule draft purge: %w", err)
	}
	if _, err := c.AddFunc(cfg.SessionCleanupSchedule, CleanSessions(sessions, time.Now)); err != nil {
		return nil, fmt.Errorf("unable to schedule session cleanup: %w", err)
	}

	c.Start()
	log.Printf("⏰ Scheduler started (drafts %q, sessions %q, %s)", cfg.DraftPurgeSchedule, cfg.SessionCleanupSchedule, loc)
	return c, nil
}

func PurgeDrafts(drafts DraftPurger, maxIdle time.Duration) func() {
	return func() {
		if n := drafts.PurgeIdle(maxIdle); n > 0 {
			log.Printf("🧹 Purged %d idle draft list(s)", n)
		}
	}
}

func CleanSessions(sessions SessionCleaner, now func() time.Time) func() {
	return func() {
		n, err := sessions(now())
		if err != nil {
			log.Printf("❌ Session cleanup failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("🧹 Deleted %d stale session(s)", n)
		}
	}
}
