package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Operation names used in errors, logs and events.
const (
	OpPing            = "ping"
	OpLogin           = "login"
	OpSignup          = "signup"
	OpMe              = "me"
	OpListPortfolios  = "list_portfolios"
	OpGetPortfolio    = "get_portfolio"
	OpCreatePortfolio = "create_portfolio"
	OpUpdatePortfolio = "update_portfolio"
	OpDeletePortfolio = "delete_portfolio"
	OpListAssets      = "list_assets"
	OpCreateAsset     = "create_asset"
	OpUpdateAsset     = "update_asset"
	OpDeleteAsset     = "delete_asset"
	OpValuations      = "valuations"
	OpCurrentNetWorth = "current_net_worth"
	OpNetWorthHistory = "net_worth_history"
	OpExportCSV       = "export_csv"
	OpExportJSON      = "export_json"
)

// CallState is the lifecycle of one gateway call.
type CallState int

const (
	StatePending CallState = iota
	StateSuccess
	StateApplicationError
	StateTransportError
	// StateAbandoned marks a call whose caller cancelled or timed out first.
	StateAbandoned
)

func (s CallState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateSuccess:
		return "SUCCESS"
	case StateApplicationError:
		return "APPLICATION_ERROR"
	case StateTransportError:
		return "TRANSPORT_ERROR"
	case StateAbandoned:
		return "ABANDONED"
	}
	return "UNKNOWN"
}

// Classify maps a call result onto its terminal state.
func Classify(err error) CallState {
	switch {
	case err == nil:
		return StateSuccess
	case IsTransport(err):
		return StateTransportError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StateAbandoned
	}
	return StateApplicationError
}

// Event is a diagnostic record of a gateway call. Fallback is set when the
// call's transport failure was replaced by the demo identity; Err then
// holds the failure that was hidden from the caller.
type Event struct {
	ID        string
	Op        string
	State     CallState
	Fallback  bool
	Simulated bool
	Err       error
	At        time.Time
	Elapsed   time.Duration
}

// Recorder receives gateway events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(Event)
}

// MemoryRecorder keeps the most recent events.
type MemoryRecorder struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewMemoryRecorder keeps at most limit events; limit <= 0 means 256.
func NewMemoryRecorder(limit int) *MemoryRecorder {
	if limit <= 0 {
		limit = 256
	}
	return &MemoryRecorder{limit: limit}
}

func (r *MemoryRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if over := len(r.events) - r.limit; over > 0 {
		r.events = append(r.events[:0:0], r.events[over:]...)
	}
}

func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Fallbacks returns only the events where the demo identity was served.
func (r *MemoryRecorder) Fallbacks() []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Fallback {
			out = append(out, e)
		}
	}
	return out
}

// LastFallback reports the most recent fallback event.
func (r *MemoryRecorder) LastFallback() (Event, bool) {
	f := r.Fallbacks()
	if len(f) == 0 {
		return Event{}, false
	}
	return f[len(f)-1], true
}
