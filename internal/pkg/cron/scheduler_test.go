package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvery(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	next := Every(1 * time.Hour)(now)
	assert.Equal(t, now.Add(time.Hour), next)
}

func TestDailyAt(t *testing.T) {
	// Before today's fire time
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	next := DailyAt(23, 30)(now)
	assert.Equal(t, time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC), next)

	// Past today's fire time rolls over to tomorrow
	next = DailyAt(0, 0)(now)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), next)

	// Exactly at the fire time also rolls over
	at := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	next = DailyAt(0, 0)(at)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), next)
}

func TestDailyAt_ConvertsToUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 8, 29, 5, 0, 0, 0, jakarta) // 2026-08-28 22:00 UTC
	next := DailyAt(0, 0)(now)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), next)
}

func TestRunOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var ran []string
	s.AddJob("first", DailyAt(0, 0), func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	s.AddJob("second", Every(time.Minute), func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	// A failing job does not stop the others
	assert.Equal(t, []string{"first", "second"}, ran)
}
