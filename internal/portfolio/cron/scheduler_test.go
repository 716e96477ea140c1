package cronjob

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) Warm(ctx context.Context) ([]service.TableStatus, error) {
	w.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("no deadline")
	}
	return []service.TableStatus{
		{Table: sheets.TableWorks, Source: service.SourceLive, Cached: true},
		{Table: sheets.TableTools, Source: service.SourceFallback},
	}, w.err
}

func TestNewScheduler_BadSpec(t *testing.T) {
	_, err := NewScheduler("every tuesday", &countingWarmer{}, 0, nil)
	assert.Error(t, err)
}

func TestRunOnce_LogsSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := &countingWarmer{}
	s, err := NewScheduler("", w, time.Second, zap.New(core))
	require.NoError(t, err)

	s.RunOnce()

	assert.EqualValues(t, 1, w.calls.Load())
	entries := logs.FilterMessage("warm job completed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1, entries[0].ContextMap()["live"])
	assert.EqualValues(t, 2, entries[0].ContextMap()["tables"])
}

func TestRunOnce_Failure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := &countingWarmer{err: context.DeadlineExceeded}
	s, err := NewScheduler("", w, time.Second, zap.New(core))
	require.NoError(t, err)

	s.RunOnce()

	assert.Equal(t, 1, logs.FilterMessage("warm job failed").Len())
}

func TestScheduler_Fires(t *testing.T) {
	w := &countingWarmer{}
	s, err := NewScheduler("@every 1s", w, time.Second, nil)
	require.NoError(t, err)

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return w.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}
