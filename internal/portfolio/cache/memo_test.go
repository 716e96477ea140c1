package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_LoadsOnce(t *testing.T) {
	var m Memo[[]string]
	var calls int32

	load := func(ctx context.Context) ([]string, bool, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a"}, true, nil
	}

	for i := 0; i < 3; i++ {
		v, err := m.Get(context.Background(), load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	v, ok := m.Peek()
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, v)
}

func TestMemo_ConcurrentCallersShareLoad(t *testing.T) {
	var m Memo[int]
	var calls int32
	release := make(chan struct{})

	load := func(ctx context.Context) (int, bool, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, true, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.Get(context.Background(), load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}

func TestMemo_UnkeptValuesAreNotStored(t *testing.T) {
	var m Memo[string]
	var calls int32

	load := func(ctx context.Context) (string, bool, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "fallback", false, nil
		}
		return "live", true, nil
	}

	v, err := m.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
	_, ok := m.Peek()
	assert.False(t, ok)

	v, err = m.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "live", v)

	v, err = m.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "live", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMemo_Errors(t *testing.T) {
	var m Memo[string]
	boom := errors.New("boom")

	_, err := m.Get(context.Background(), func(ctx context.Context) (string, bool, error) {
		return "", true, boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok := m.Peek()
	assert.False(t, ok)
}

func TestMemo_SetIsFirstWriteWins(t *testing.T) {
	var m Memo[string]
	assert.True(t, m.Set("first"))
	assert.False(t, m.Set("second"))

	v, _ := m.Peek()
	assert.Equal(t, "first", v)
}

func TestMemo_Replace(t *testing.T) {
	var m Memo[string]
	m.Replace("fallback")
	v, ok := m.Peek()
	require.True(t, ok)
	assert.Equal(t, "fallback", v)

	m.Replace("live")
	v, err := m.Get(context.Background(), func(context.Context) (string, bool, error) {
		t.Fatal("load must not run once a value is stored")
		return "", false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "live", v)
}

func TestMemo_CancelledCallerDoesNotAbortLoad(t *testing.T) {
	var m Memo[string]
	release := make(chan struct{})
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		_, err := m.Get(ctx, func(loadCtx context.Context) (string, bool, error) {
			<-release
			return "late", loadCtx.Err() == nil, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done
	close(release)

	assert.Eventually(t, func() bool {
		v, ok := m.Peek()
		return ok && v == "late"
	}, time.Second, 5*time.Millisecond)
}
