package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/common"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every request when none is configured.
const DefaultTimeout = 5 * time.Second

const maxErrorBody = 64 << 10

// HTTPClient talks to the backend over HTTP/JSON. It performs no retries.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
	now     func() time.Time
}

type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client, e.g. to supply a
// custom transport. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) HTTPOption {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL. A nil tokens source sends
// every request unauthenticated; timeout <= 0 means DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and returns the body of a 2xx response. It maps
// failures onto the call outcomes: the caller's context error when the
// caller gave up, *TransportError when no response arrived and
// *ApplicationError when the backend answered with an error status.
func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), r.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+tok)
		}
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Debug(ctx, "request failed", "op", r.op, "request_id", requestID, "error", err)
		return nil, &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"op", r.op, "request_id", requestID, "status", resp.StatusCode, "elapsed", c.now().Sub(start))

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		detail := ""
		if json.Unmarshal(raw, &eb) == nil {
			detail = eb.detailText()
		}
		return nil, &ApplicationError{Op: r.op, Status: resp.StatusCode, Detail: detail}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Op: r.op, Err: err}
	}
	return body, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, r request, out any) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return malformed(r.op, err)
	}
	return nil
}

// malformed reports a response that arrived but could not be understood.
func malformed(op string, err error) error {
	return &ApplicationError{Op: op, Status: http.StatusBadGateway, Detail: fmt.Sprintf("%s: malformed response: %v", op, err)}
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping succeeds on any response below 500.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, request{op: OpPing, method: http.MethodGet, path: "/health"})
	var ae *ApplicationError
	if errors.As(err, &ae) && ae.Status < http.StatusInternalServerError {
		return nil
	}
	return err
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", creds.Password)

	var out models.AuthResponse
	err := c.doJSON(ctx, request{
		op:          OpLogin,
		method:      http.MethodPost,
		path:        "/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &out)
	return out, err
}

func (c *HTTPClient) Signup(ctx context.Context, creds models.SignupCredentials) (models.AuthResponse, error) {
	body, err := jsonBody(signupRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return models.AuthResponse{}, err
	}
	var out models.AuthResponse
	err = c.doJSON(ctx, request{op: OpSignup, method: http.MethodPost, path: "/signup", body: body, contentType: "application/json"}, &out)
	return out, err
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.doJSON(ctx, request{op: OpMe, method: http.MethodGet, path: "/me"}, &out)
	return out, err
}

func (c *HTTPClient) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	var dtos []portfolioDTO
	if err := c.doJSON(ctx, request{op: OpListPortfolios, method: http.MethodGet, path: "/portfolios"}, &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Portfolio, 0, len(dtos))
	for _, d := range dtos {
		p, err := d.model()
		if err != nil {
			return nil, malformed(OpListPortfolios, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *HTTPClient) portfolio(ctx context.Context, r request) (models.Portfolio, error) {
	var dto portfolioDTO
	if err := c.doJSON(ctx, r, &dto); err != nil {
		return models.Portfolio{}, err
	}
	p, err := dto.model()
	if err != nil {
		return models.Portfolio{}, malformed(r.op, err)
	}
	return p, nil
}

func (c *HTTPClient) GetPortfolio(ctx context.Context, id string) (models.Portfolio, error) {
	return c.portfolio(ctx, request{op: OpGetPortfolio, method: http.MethodGet, path: "/portfolios/" + url.PathEscape(id)})
}

func (c *HTTPClient) CreatePortfolio(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error) {
	body, err := jsonBody(in)
	if err != nil {
		return models.Portfolio{}, err
	}
	return c.portfolio(ctx, request{op: OpCreatePortfolio, method: http.MethodPost, path: "/portfolios", body: body, contentType: "application/json"})
}

func (c *HTTPClient) UpdatePortfolio(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error) {
	body, err := jsonBody(in)
	if err != nil {
		return models.Portfolio{}, err
	}
	return c.portfolio(ctx, request{op: OpUpdatePortfolio, method: http.MethodPut, path: "/portfolios/" + url.PathEscape(id), body: body, contentType: "application/json"})
}

func (c *HTTPClient) DeletePortfolio(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{op: OpDeletePortfolio, method: http.MethodDelete, path: "/portfolios/" + url.PathEscape(id)}, nil)
}

func assetsPath(portfolioID string) string {
	return "/portfolios/" + url.PathEscape(portfolioID) + "/assets"
}

func (c *HTTPClient) ListAssets(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	var dtos []assetDTO
	if err := c.doJSON(ctx, request{op: OpListAssets, method: http.MethodGet, path: assetsPath(portfolioID)}, &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Holding, 0, len(dtos))
	for _, d := range dtos {
		h, err := d.model()
		if err != nil {
			return nil, malformed(OpListAssets, err)
		}
		if h.PortfolioID == "" {
			h.PortfolioID = portfolioID
		}
		out = append(out, h)
	}
	return out, nil
}

func (c *HTTPClient) asset(ctx context.Context, r request) (models.Holding, error) {
	var dto assetDTO
	if err := c.doJSON(ctx, r, &dto); err != nil {
		return models.Holding{}, err
	}
	h, err := dto.model()
	if err != nil {
		return models.Holding{}, malformed(r.op, err)
	}
	return h, nil
}

func (c *HTTPClient) CreateAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error) {
	body, err := jsonBody(newAssetRequest(in))
	if err != nil {
		return models.Holding{}, err
	}
	return c.asset(ctx, request{op: OpCreateAsset, method: http.MethodPost, path: assetsPath(portfolioID), body: body, contentType: "application/json"})
}

func (c *HTTPClient) UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error) {
	body, err := jsonBody(newAssetRequest(in))
	if err != nil {
		return models.Holding{}, err
	}
	return c.asset(ctx, request{op: OpUpdateAsset, method: http.MethodPut, path: assetsPath(portfolioID) + "/" + url.PathEscape(assetID), body: body, contentType: "application/json"})
}

func (c *HTTPClient) DeleteAsset(ctx context.Context, portfolioID, assetID string) error {
	return c.doJSON(ctx, request{op: OpDeleteAsset, method: http.MethodDelete, path: assetsPath(portfolioID) + "/" + url.PathEscape(assetID)}, nil)
}

func (c *HTTPClient) Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("start", start.Format(models.DateLayout))
	}
	if !end.IsZero() {
		q.Set("end", end.Format(models.DateLayout))
	}
	var dtos []valuationDTO
	err := c.doJSON(ctx, request{op: OpValuations, method: http.MethodGet, path: "/portfolios/" + url.PathEscape(portfolioID) + "/valuations", query: q}, &dtos)
	if err != nil {
		return nil, err
	}
	out := make([]models.Valuation, 0, len(dtos))
	for _, d := range dtos {
		date, err := models.ParseDate(d.Date)
		if err != nil {
			return nil, malformed(OpValuations, err)
		}
		out = append(out, models.Valuation{Date: date, Value: d.Value})
	}
	return out, nil
}

func (c *HTTPClient) CurrentNetWorth(ctx context.Context) (models.NetWorthReport, error) {
	body, err := c.do(ctx, request{op: OpCurrentNetWorth, method: http.MethodGet, path: "/networth/current"})
	if err != nil {
		return models.NetWorthReport{}, err
	}
	report, err := decodeNetWorth(body, c.now())
	if err != nil {
		return models.NetWorthReport{}, malformed(OpCurrentNetWorth, err)
	}
	return report, nil
}

func (c *HTTPClient) NetWorthHistory(ctx context.Context, p history.Period) ([]models.HistoryPoint, error) {
	q := url.Values{}
	for k, v := range p.Query() {
		q.Set(k, v)
	}
	var out []models.HistoryPoint
	err := c.doJSON(ctx, request{op: OpNetWorthHistory, method: http.MethodGet, path: "/networth/history", query: q}, &out)
	return out, err
}

func (c *HTTPClient) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.do(ctx, request{op: OpExportCSV, method: http.MethodGet, path: "/export/csv"})
}

func (c *HTTPClient) ExportJSON(ctx context.Context) ([]byte, error) {
	return c.do(ctx, request{op: OpExportJSON, method: http.MethodGet, path: "/export/json"})
}
