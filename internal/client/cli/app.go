package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/config"
	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config           *config.Config
	authService      services.AuthService
	portfolioService services.PortfolioService
	netWorthService  services.NetWorthService
	sink             export.Sink
	log              logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(
	c *config.Config,
	as services.AuthService,
	ps services.PortfolioService,
	ns services.NetWorthService,
	sink export.Sink,
	log logging.Logger,
) *App {
	return &App{
		config:           c,
		authService:      as,
		portfolioService: ps,
		netWorthService:  ns,
		sink:             sink,
		log:              log,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Current().Authenticated()
}

// Run restores the previous session, probes the backend once, starts the
// watcher and serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	if s, err := a.authService.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	} else if s.Authenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.User.Email)
	}

	a.probe(ctx)
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "WealthWise CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) probe(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, pingTimeout)
	err := a.authService.Ping(ctx)
	cancel()

	switch {
	case parent.Err() != nil:
	case err != nil:
		a.setMode(ModeOffline)
	default:
		a.setMode(ModeOnline)
	}
}

// StartOnlineStatusWatcher pings the backend every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	s := ""
	if cur := a.authService.Current(); cur.Authenticated() {
		s = cur.User.Email + " "
	}
	s += string(a.Mode())
	if a.config != nil && a.config.SimulatedAuth {
		s += " simulated"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
