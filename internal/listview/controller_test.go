package listview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerStartSeedsSession(t *testing.T) {
	session := NewSession[item](10, nil)

	var loads atomic.Int32
	var refreshed atomic.Int32
	var loadingSeen []bool
	var mu sync.Mutex

	ctrl := NewController(ControllerProperty[item]{
		Session: session,
		Load: func(context.Context) []item {
			loads.Add(1)
			return makeItems(25)
		},
		OnLoading: func(active bool) {
			mu.Lock()
			loadingSeen = append(loadingSeen, active)
			mu.Unlock()
		},
		OnRefresh: func() { refreshed.Add(1) },
	})

	assert.Equal(t, StateIdle, ctrl.State())
	require.NoError(t, ctrl.Start(context.Background()))

	assert.Equal(t, StateReady, ctrl.State())
	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, int32(1), refreshed.Load())
	assert.Equal(t, 25, session.Len())
	assert.Equal(t, []bool{true, false}, loadingSeen)
}

func TestControllerRefreshIsReentrantSafe(t *testing.T) {
	session := NewSession[item](10, nil)

	var loads atomic.Int32
	ctrl := NewController(ControllerProperty[item]{
		Session:      session,
		RefreshDelay: 50 * time.Millisecond,
		Load: func(context.Context) []item {
			loads.Add(1)
			return makeItems(5)
		},
	})

	done := make(chan struct{})
	go func() {
		_ = ctrl.Refresh(context.Background())
		close(done)
	}()

	// Wait until the first refresh holds the in-flight flag, then
	// double-click the button.
	assert.Eventually(t, func() bool { return ctrl.State() == StateLoading },
		time.Second, time.Millisecond)
	require.NoError(t, ctrl.Refresh(context.Background()))
	require.NoError(t, ctrl.Refresh(context.Background()))

	<-done
	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, StateReady, ctrl.State())
}

func TestControllerRefreshHonorsContext(t *testing.T) {
	session := NewSession[item](10, nil)
	ctrl := NewController(ControllerProperty[item]{
		Session:      session,
		RefreshDelay: time.Minute,
		Load:         func(context.Context) []item { return makeItems(5) },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := ctrl.Refresh(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, session.Len())
	// A failed refresh still releases the trigger.
	assert.Equal(t, StateReady, ctrl.State())
}

func TestControllerQueryChangedDebounces(t *testing.T) {
	session := NewSession[item](10, nil)
	ctrl := NewController(ControllerProperty[item]{
		Session:        session,
		DebounceWindow: 15 * time.Millisecond,
		Load:           func(context.Context) []item { return nil },
	})
	defer ctrl.Stop()

	var applied atomic.Int32
	ctrl.QueryChanged(func() { applied.Add(1) })
	ctrl.QueryChanged(func() { applied.Add(1) })
	ctrl.QueryChanged(func() { applied.Add(1) })

	assert.Eventually(t, func() bool { return applied.Load() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), applied.Load())
}
