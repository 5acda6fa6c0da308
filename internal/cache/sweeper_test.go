package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// countingTarget records sweep invocations.
type countingTarget struct {
	mu     sync.Mutex
	sweeps int
}

func (c *countingTarget) Name() string { return "counting" }

func (c *countingTarget) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweeps++
	return 0
}

func (c *countingTarget) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweeps
}

func TestRunSweeperTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	target := &countingTarget{}
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, target, 5*time.Millisecond, zerolog.Nop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return target.count() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestRunSweeperStopsWithoutTicking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := &countingTarget{}
	done := make(chan struct{})
	go func() {
		// Long interval: the only way out is the cancelled context.
		RunSweeper(ctx, target, time.Hour, zerolog.Nop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not honor pre-cancelled context")
	}
	assert.Zero(t, target.count())
}
