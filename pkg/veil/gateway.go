package veil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Param is one GET query parameter. Parameters are serialized in insertion
// order; nested option objects must be pre-flattened by the caller.
type Param struct {
	Key   string
	Value string
}

// envelope is the platform's uniform response shape. Exactly one of Data or
// Errors is meaningful.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorDetail   `json:"errors"`
}

// gateway builds and dispatches REST requests: ordered query encoding for
// GET, JSON bodies otherwise, bearer injection when a session token is held,
// envelope unwrapping, and error classification (transport vs API).
type gateway struct {
	http     *resty.Client
	sessions *SessionStore
	logger   *slog.Logger
}

func newGateway(host string, timeout time.Duration, sessions *SessionStore, logger *slog.Logger) *gateway {
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &gateway{
		http:     client,
		sessions: sessions,
		logger:   logger,
	}
}

func (g *gateway) get(ctx context.Context, path string, params []Param, out any) error {
	if qs := encodeQuery(params); qs != "" {
		path += "?" + qs
	}
	return g.do(ctx, http.MethodGet, path, nil, out)
}

func (g *gateway) post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

func (g *gateway) delete(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodDelete, path, nil, out)
}

func (g *gateway) do(ctx context.Context, method, path string, body, out any) error {
	req := g.http.R().SetContext(ctx)
	if token := g.sessions.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	g.logger.Debug("api request", "method", method, "path", path)
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	requestURL := resp.Request.URL

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w",
			method, requestURL, resp.StatusCode(), err)
	}
	if len(env.Errors) > 0 {
		return &APIError{URL: requestURL, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode payload: %w", method, requestURL, err)
		}
	}
	return nil
}

// encodeQuery serializes params as component-encoded key=value pairs joined
// by &, preserving insertion order.
func encodeQuery(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
