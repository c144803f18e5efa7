package sweep

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepExpired(context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestStart_SweepsUntilCancelled(t *testing.T) {
	s := &countingSweeper{err: errors.New("locked")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Start(ctx, s, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestStart_SweepsImmediately(t *testing.T) {
	s := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Start(ctx, s, time.Hour)

	assert.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, time.Millisecond)
}
