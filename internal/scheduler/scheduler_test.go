package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls     atomic.Int32
	retention time.Duration
	err       error
}

func (p *countingPurger) PurgeExpired(_ context.Context, retention time.Duration) (int64, error) {
	p.calls.Add(1)
	p.retention = retention
	return 3, p.err
}

func TestScheduler_Register(t *testing.T) {
	s := New(context.Background(), &countingPurger{}, 24*time.Hour)

	assert.NoError(t, s.Register("0 0 3 * * *"))
	assert.Error(t, s.Register("not a cron spec"))
	assert.Error(t, s.Register("0 0 3 * *"), "specs carry a seconds field")

	zero := New(context.Background(), &countingPurger{}, 0)
	assert.Error(t, zero.Register("0 0 3 * * *"))
}

func TestScheduler_PurgeNow(t *testing.T) {
	p := &countingPurger{}
	s := New(context.Background(), p, 90*24*time.Hour)

	s.PurgeNow()
	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, 90*24*time.Hour, p.retention)

	p.err = errors.New("db down")
	s.PurgeNow()
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	p := &countingPurger{}
	s := New(context.Background(), p, time.Hour)
	require.NoError(t, s.Register("* * * * * *"))

	s.Start()
	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}
