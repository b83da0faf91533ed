package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/data"
	"github.com/target/marketplace-console/internal/domain/workflow"
	"github.com/target/marketplace-console/internal/mocks"
)

type countingSink struct {
	mu     sync.Mutex
	counts map[string]map[string]string
	gauges map[string]float64
}

func (s *countingSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]map[string]string{}
	}
	s.counts[name] = tags
}

func (s *countingSink) Gauge(name string, v float64, _ map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gauges == nil {
		s.gauges = map[string]float64{}
	}
	s.gauges[name] = v
}

func (s *countingSink) Timing(string, time.Duration, map[string]string) {}

func reserveAt(t *testing.T, ledger *data.MemoryLedger, jobID string) {
	t.Helper()
	_, err := ledger.Reserve(context.Background(), workflow.LedgerEntry{
		SessionID:   "sess-1",
		JobID:       jobID,
		Action:      workflow.ActionClaimWon,
		Fingerprint: workflow.Fingerprint("sess-1", jobID, workflow.ActionClaimWon, nil),
	})
	require.NoError(t, err)
}

func TestLedgerJanitor_PurgeOnce(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := data.NewFixedTimeProvider(start)
	ledger := data.NewMemoryLedger(data.LedgerOptions{TimeProvider: clock})

	reserveAt(t, ledger, "job-old")
	clock.Advance(48 * time.Hour)
	reserveAt(t, ledger, "job-new")

	sink := &countingSink{}
	j, err := NewLedgerJanitor(LedgerJanitorOptions{
		Ledger:  ledger,
		Config:  config.JanitorConfig{Interval: time.Hour, Retention: 24 * time.Hour},
		Metrics: sink,
		Now:     clock.Now,
	})
	require.NoError(t, err)

	deleted, err := j.PurgeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, err := ledger.ListRecent(context.Background(), workflow.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "job-new", left[0].JobID)

	assert.Equal(t, "success", sink.counts["ledger.purge"]["result"])
	assert.InDelta(t, 1.0, sink.gauges["ledger.purge.deleted"], 0)
}

func TestLedgerJanitor_PurgeOnceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockActionLedger(ctrl)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger.EXPECT().
		PurgeOlderThan(gomock.Any(), now.Add(-time.Hour)).
		Return(int64(0), errors.New("connection reset"))

	sink := &countingSink{}
	j, err := NewLedgerJanitor(LedgerJanitorOptions{
		Ledger:  ledger,
		Config:  config.JanitorConfig{Interval: time.Minute, Retention: time.Hour},
		Metrics: sink,
		Now:     func() time.Time { return now },
	})
	require.NoError(t, err)

	_, err = j.PurgeOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "error", sink.counts["ledger.purge"]["result"])
	assert.NotContains(t, sink.gauges, "ledger.purge.deleted")
}

func TestLedgerJanitor_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockActionLedger(ctrl)
	ledger.EXPECT().PurgeOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	j, err := NewLedgerJanitor(LedgerJanitorOptions{
		Ledger: ledger,
		Config: config.JanitorConfig{Interval: time.Hour, Retention: time.Hour},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	// The first pass waits for up to a tenth of the interval.
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestNewLedgerJanitor_Validation(t *testing.T) {
	_, err := NewLedgerJanitor(LedgerJanitorOptions{Config: config.JanitorConfig{Interval: time.Minute}})
	require.Error(t, err)

	ctrl := gomock.NewController(t)
	_, err = NewLedgerJanitor(LedgerJanitorOptions{Ledger: mocks.NewMockActionLedger(ctrl)})
	require.Error(t, err)
}
