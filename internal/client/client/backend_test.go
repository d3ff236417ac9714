package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

const backendToken = "backend-token"

// fakeBackend is an in-process stand-in for the WealthWise API.
type fakeBackend struct {
	srv *httptest.Server

	mu          sync.Mutex
	hits        int
	auth        []string
	requestIDs  []string
	lastQuery   url.Values
	lastBody    []byte
	contentType string

	// arrived is signalled when /login receives a request for slow@example.com.
	arrived chan struct{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{arrived: make(chan struct{}, 1)}

	r := chi.NewRouter()
	r.Use(b.capture)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}) })
	r.Post("/login", b.login)
	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		if err := json.Unmarshal(b.body(), &in); err != nil || in.Email == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "field required"}}})
			return
		}
		if in.Email == "taken@example.com" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, authBody("u-77", in.Email))
	})
	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+backendToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "u-42", "email": "jane@example.com"})
	})

	r.Route("/portfolios", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "p1", "name": "Main", "description": "Long term", "created_at": "2024-01-01T09:00:00", "updated_at": "2024-02-01T09:00:00Z"},
				{"id": "p2", "name": "Crypto", "description": nil, "created_at": "2024-03-01T09:00:00Z", "updated_at": "2024-03-01T09:00:00Z"},
			})
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.Unmarshal(b.body(), &in)
			writeJSON(w, http.StatusCreated, map[string]any{"id": "p9", "name": in["name"], "description": in["description"], "created_at": "2024-05-01T00:00:00Z", "updated_at": "2024-05-01T00:00:00Z"})
		})
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				if chi.URLParam(r, "id") != "p1" {
					writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Portfolio not found"})
					return
				}
				writeJSON(w, http.StatusOK, map[string]any{"id": "p1", "name": "Main", "created_at": "2024-01-01T09:00:00Z", "updated_at": "2024-01-01T09:00:00Z"})
			})
			r.Put("/", func(w http.ResponseWriter, r *http.Request) {
				var in map[string]string
				_ = json.Unmarshal(b.body(), &in)
				writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "name": in["name"], "created_at": "2024-01-01T09:00:00Z", "updated_at": "2024-06-01T09:00:00Z"})
			})
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
			r.Get("/valuations", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{{"date": "2024-01-01", "value": 1000}, {"date": "2024-02-01", "value": 1100.5}})
			})
			r.Get("/assets", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": "a1", "portfolio_id": chi.URLParam(r, "id"), "type": "stock", "identifier": "AAPL", "quantity": 100, "purchase_price": 152.5, "current_value": nil, "purchase_date": "2023-06-01"},
					{"id": "a2", "type": "liability", "identifier": "Mortgage", "quantity": 1, "purchase_price": 0, "current_value": 20000, "purchase_date": "2020-01-01T00:00:00", "metadata": map[string]any{"rate": 3.1}},
				})
			})
			r.Post("/assets", func(w http.ResponseWriter, r *http.Request) {
				var in map[string]any
				_ = json.Unmarshal(b.body(), &in)
				in["id"] = "a9"
				in["portfolio_id"] = chi.URLParam(r, "id")
				writeJSON(w, http.StatusCreated, in)
			})
			r.Put("/assets/{assetID}", func(w http.ResponseWriter, r *http.Request) {
				var in map[string]any
				_ = json.Unmarshal(b.body(), &in)
				in["id"] = chi.URLParam(r, "assetID")
				writeJSON(w, http.StatusOK, in)
			})
			r.Delete("/assets/{assetID}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
		})
	})

	r.Get("/networth/current", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total_net_worth":   -4750,
			"total_assets":      15250,
			"total_liabilities": 20000,
			"breakdown":         map[string]any{"stocks": 15250, "crypto": 0, "real_estate": 0, "liabilities": 20000},
			"top_assets": []map[string]any{
				{"identifier": "AAPL", "type": "stock", "current_value": 15250, "quantity": 100, "unit_price": 152.5},
			},
		})
	})
	r.Get("/networth/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"date": "2024-01-01", "net_worth": 95000, "assets": 100000, "liabilities": 5000},
			{"date": "2024-05-15", "net_worth": 125650, "assets": 130000, "liabilities": 4350},
		})
	})
	r.Get("/export/csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "date,net_worth\n2024-05-15,125650\n")
	})
	r.Get("/export/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"portfolios": []any{}})
	})
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "{not json") })

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.hits++
		b.auth = append(b.auth, r.Header.Get("Authorization"))
		b.requestIDs = append(b.requestIDs, r.Header.Get("X-Request-ID"))
		b.lastQuery = r.URL.Query()
		b.lastBody = raw
		b.contentType = r.Header.Get("Content-Type")
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	form, _ := url.ParseQuery(string(b.body()))
	switch form.Get("username") {
	case "slow@example.com":
		b.arrived <- struct{}{}
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		return
	case "jane@example.com":
		if form.Get("password") == "s3cret!" {
			writeJSON(w, http.StatusOK, authBody("u-42", "jane@example.com"))
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
}

func (b *fakeBackend) body() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *fakeBackend) hitCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits
}

func (b *fakeBackend) lastAuth() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.auth) == 0 {
		return ""
	}
	return b.auth[len(b.auth)-1]
}

func (b *fakeBackend) query() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery
}

func authBody(id, email string) map[string]any {
	return map[string]any{
		"access_token": backendToken,
		"token_type":   "bearer",
		"user":         map[string]string{"id": id, "email": email},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }
