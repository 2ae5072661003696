package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var a, b int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&a, 1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&b, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&a))
	assert.Equal(t, int32(1), atomic.LoadInt32(&b), "a failing job does not stop the others")
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("wait", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(done)
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled")
	}
	s.Stop()
}

func TestScheduler_SkipsOverlappingRun(t *testing.T) {
	s := NewScheduler()

	var runs int32
	release := make(chan struct{})
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		<-release
		return nil
	})

	go s.RunOnce(context.Background())
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, time.Millisecond)

	// the first run still holds the job
	s.RunOnce(context.Background())
	close(release)

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}
