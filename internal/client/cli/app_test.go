package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	app := &App{log: logging.NewTextLogger(&buf, slog.LevelInfo)}

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode())
	assert.Contains(t, buf.String(), "mode=online")

	buf.Reset()
	app.setMode(ModeOnline)
	assert.Empty(t, buf.String())

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Contains(t, buf.String(), "mode=offline")
}

func TestIsLoggedIn(t *testing.T) {
	auth := &fakeAuth{}
	app, _ := newTestApp(t, auth, &fakePortfolios{}, &fakeNetWorth{})
	assert.False(t, app.isLoggedIn())

	_, err := auth.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.True(t, app.isLoggedIn())
}

func TestStartOnlineStatusWatcher_FlipsMode(t *testing.T) {
	auth := &fakeAuth{}
	app, _ := newTestApp(t, auth, &fakePortfolios{}, &fakeNetWorth{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	auth.setPingErr(errors.New("refused"))
	require.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStatusLine(t *testing.T) {
	auth := &fakeAuth{}
	app, _ := newTestApp(t, auth, &fakePortfolios{}, &fakeNetWorth{})
	app.setMode(ModeOffline)
	assert.Equal(t, "(offline)", app.status())

	_, err := auth.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	app.config.SimulatedAuth = true
	assert.Equal(t, "(a@b.c offline simulated)", app.status())
}

func TestRun_ExitsOnEOF(t *testing.T) {
	capturePrints(t)
	auth := &fakeAuth{}
	app, out := newTestApp(t, auth, &fakePortfolios{}, &fakeNetWorth{}, "status")

	app.Run(context.Background())

	assert.Equal(t, ModeOnline, app.Mode())
	assert.Contains(t, out.String(), "mode:      online")
	assert.GreaterOrEqual(t, auth.pingCount, 1)
}
