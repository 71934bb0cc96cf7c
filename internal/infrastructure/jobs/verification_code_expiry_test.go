package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type codeExpiryRepoStub struct {
	mu      sync.Mutex
	count   int64
	err     error
	calls   int
	lastNow time.Time
}

func (s *codeExpiryRepoStub) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastNow = now
	return s.count, s.err
}

func (s *codeExpiryRepoStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestExpireOverdueCodes_PassesClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := &codeExpiryRepoStub{count: 3}
	job := NewVerificationCodeExpiryJob(repo, time.Millisecond)
	job.now = func() time.Time { return fixed }

	job.expireOverdueCodes(context.Background())
	require.Equal(t, 1, repo.calls)
	require.Equal(t, fixed, repo.lastNow)
}

func TestExpireOverdueCodes_Error(t *testing.T) {
	repo := &codeExpiryRepoStub{err: errors.New("db down")}
	job := NewVerificationCodeExpiryJob(repo, time.Millisecond)

	job.expireOverdueCodes(context.Background())
	require.Equal(t, 1, repo.calls)
}

func TestNewVerificationCodeExpiryJob_DefaultInterval(t *testing.T) {
	job := NewVerificationCodeExpiryJob(&codeExpiryRepoStub{}, 0)
	require.Equal(t, time.Minute, job.interval)
}

func TestStartStop_TicksThenStopsByContext(t *testing.T) {
	repo := &codeExpiryRepoStub{}
	job := NewVerificationCodeExpiryJob(repo, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.callCount() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewVerificationCodeExpiryJob(&codeExpiryRepoStub{}, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
