package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/config"
	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

type fakeAuth struct {
	mu      sync.Mutex
	current session.Session

	loginEmail, loginPass string
	loginErr              error

	signupEmail, signupPass, signupConfirm string
	signupErr                              error

	logoutCalled bool
	logoutErr    error

	pingErr   error
	pingCount int

	lastEmail string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (session.Session, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = session.Session{Token: "t", User: models.User{ID: "u-1", Email: email}}
	return f.current, nil
}

func (f *fakeAuth) Signup(_ context.Context, email, password, confirm string) (session.Session, error) {
	f.signupEmail, f.signupPass, f.signupConfirm = email, password, confirm
	if f.signupErr != nil {
		return session.Session{}, f.signupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = session.Session{Token: "t", User: models.User{ID: "u-2", Email: email}}
	return f.current, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = session.Session{}
	return nil
}

func (f *fakeAuth) Current() session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeAuth) Restore(context.Context) (session.Session, error) { return f.Current(), nil }

func (f *fakeAuth) Me(context.Context) (models.User, error) { return f.Current().User, nil }

func (f *fakeAuth) LastEmail(context.Context) string { return f.lastEmail }

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingCount++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakePortfolios struct {
	list         []models.Portfolio
	created      models.PortfolioInput
	updated      models.PortfolioInput
	deleted      string
	assets       []models.Holding
	added        models.AssetInput
	addedTo      string
	updatedAsset models.AssetInput
	removed      [2]string
	valuations   []models.Valuation
	valStart     time.Time
	valEnd       time.Time
	err          error
}

func (f *fakePortfolios) List(context.Context) ([]models.Portfolio, error) { return f.list, f.err }

func (f *fakePortfolios) Get(_ context.Context, id string) (models.Portfolio, error) {
	for _, p := range f.list {
		if p.ID == id {
			return p, f.err
		}
	}
	return models.Portfolio{ID: id}, f.err
}

func (f *fakePortfolios) Create(_ context.Context, in models.PortfolioInput) (models.Portfolio, error) {
	f.created = in
	return models.Portfolio{ID: "p-new", Name: in.Name}, f.err
}

func (f *fakePortfolios) Update(_ context.Context, id string, in models.PortfolioInput) (models.Portfolio, error) {
	f.updated = in
	return models.Portfolio{ID: id, Name: in.Name}, f.err
}

func (f *fakePortfolios) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakePortfolios) Assets(context.Context, string) ([]models.Holding, error) {
	return f.assets, f.err
}

func (f *fakePortfolios) AddAsset(_ context.Context, pid string, in models.AssetInput) (models.Holding, error) {
	f.addedTo, f.added = pid, in
	return models.Holding{ID: "a-new", Kind: in.Kind, Identifier: in.Identifier}, f.err
}

func (f *fakePortfolios) UpdateAsset(_ context.Context, _, aid string, in models.AssetInput) (models.Holding, error) {
	f.updatedAsset = in
	return models.Holding{ID: aid, Kind: in.Kind, Identifier: in.Identifier}, f.err
}

func (f *fakePortfolios) RemoveAsset(_ context.Context, pid, aid string) error {
	f.removed = [2]string{pid, aid}
	return f.err
}

func (f *fakePortfolios) Valuations(_ context.Context, _ string, start, end time.Time) ([]models.Valuation, error) {
	f.valStart, f.valEnd = start, end
	return f.valuations, f.err
}

type fakeNetWorth struct {
	report     models.NetWorthReport
	remoteUsed bool
	series     history.Series
	historyErr error
	localUsed  bool
	local      history.Series
	latest     *models.NetWorthSnapshot
	top        []models.Holding
	topN       int
	exported   export.Format
	err        error
}

func (f *fakeNetWorth) Compute(context.Context) (models.NetWorthReport, error) { return f.report, f.err }

func (f *fakeNetWorth) Remote(context.Context) (models.NetWorthReport, error) {
	f.remoteUsed = true
	return f.report, f.err
}

func (f *fakeNetWorth) History(context.Context, history.Period) (history.Series, error) {
	return f.series, f.historyErr
}

func (f *fakeNetWorth) LocalHistory(context.Context, history.Period) (history.Series, error) {
	f.localUsed = true
	return f.local, f.err
}

func (f *fakeNetWorth) Latest(context.Context) (models.NetWorthSnapshot, bool, error) {
	if f.latest == nil {
		return models.NetWorthSnapshot{}, false, nil
	}
	return *f.latest, true, nil
}

func (f *fakeNetWorth) Top(_ context.Context, n int) ([]models.Holding, error) {
	f.topN = n
	return f.top, f.err
}

func (f *fakeNetWorth) Export(_ context.Context, fm export.Format, _ export.Sink) (string, error) {
	f.exported = fm
	return "/tmp/out." + string(fm), f.err
}

func (f *fakeNetWorth) LastSync(context.Context) (time.Time, bool) { return time.Time{}, false }

// newTestApp builds an App reading the given input lines.
func newTestApp(t *testing.T, auth *fakeAuth, ps *fakePortfolios, ns *fakeNetWorth, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	out := &bytes.Buffer{}
	a := NewApp(cfg, auth, ps, ns, nil, logging.Nop())
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	a.out = out
	return a, out
}

func stubPassword(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		pw := pws[i%len(pws)]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
