package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records Close calls so tests can assert close-once semantics.
type fakeEngine struct {
	closes atomic.Int64
}

func (e *fakeEngine) Execute(verb string, args []string) string { return `{}` }

func (e *fakeEngine) Send(ctx context.Context, dest string, amount uint64, memo *string) (string, error) {
	return "", nil
}

func (e *fakeEngine) StartMempoolWatcher() {}

func (e *fakeEngine) Close() error {
	e.closes.Add(1)
	return nil
}

func TestRegistry_EmptySlot(t *testing.T) {
	r := New(nil)

	h, ok := r.Get()
	assert.False(t, ok)
	assert.Nil(t, h)

	// Clearing an empty slot is not an error.
	r.Clear()
	r.Clear()
}

func TestRegistry_SetAndGet(t *testing.T) {
	r := New(nil)
	eng := &fakeEngine{}

	r.Set(NewHandle(eng))

	h, ok := r.Get()
	require.True(t, ok)
	require.Same(t, eng, h.Engine().(*fakeEngine))
	h.Release()

	assert.Equal(t, int64(0), eng.closes.Load(), "engine must stay open while registered")
}

func TestRegistry_ReplaceClosesOldWhenUnreferenced(t *testing.T) {
	r := New(nil)
	old := &fakeEngine{}
	r.Set(NewHandle(old))

	r.Set(NewHandle(&fakeEngine{}))

	assert.Equal(t, int64(1), old.closes.Load(), "old engine closes when its last reference drops")
}

func TestRegistry_InFlightHolderKeepsOldEngineAlive(t *testing.T) {
	r := New(nil)
	old := &fakeEngine{}
	r.Set(NewHandle(old))

	h, ok := r.Get()
	require.True(t, ok)

	r.Set(NewHandle(&fakeEngine{}))
	assert.Equal(t, int64(0), old.closes.Load(), "captured reference keeps the old engine alive")

	h.Release()
	assert.Equal(t, int64(1), old.closes.Load(), "old engine closes once the holder releases")
}

func TestRegistry_ClearClosesEngine(t *testing.T) {
	r := New(nil)
	eng := &fakeEngine{}
	r.Set(NewHandle(eng))

	r.Clear()
	assert.Equal(t, int64(1), eng.closes.Load())
}

func TestRegistry_CloseFiresOnce(t *testing.T) {
	r := New(nil)
	eng := &fakeEngine{}
	r.Set(NewHandle(eng))

	var holders []*Handle
	for i := 0; i < 8; i++ {
		h, ok := r.Get()
		require.True(t, ok)
		holders = append(holders, h)
	}

	r.Clear()
	for _, h := range holders {
		h.Release()
	}

	assert.Equal(t, int64(1), eng.closes.Load())
}

func TestRegistry_ConcurrentGetAndSwap(t *testing.T) {
	r := New(nil)
	r.Set(NewHandle(&fakeEngine{}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if h, ok := r.Get(); ok {
					_ = h.Engine().Execute("balance", nil)
					h.Release()
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		r.Set(NewHandle(&fakeEngine{}))
	}
	close(stop)
	wg.Wait()

	h, ok := r.Get()
	require.True(t, ok, "final swap leaves a live handle")
	h.Release()
}

func TestHandle_ReleaseNil(t *testing.T) {
	var h *Handle
	h.Release() // must not panic
}
