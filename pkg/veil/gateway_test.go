package veil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"veil-client/pkg/types"
)

func TestEncodeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params []Param
		want   string
	}{
		{"empty", nil, ""},
		{"single", []Param{{"status", "open"}}, "status=open"},
		{"order preserved", []Param{{"status", "open"}, {"page", "2"}}, "status=open&page=2"},
		{"values escaped", []Param{{"q", "a b&c"}}, "q=a+b%26c"},
		{"keys escaped", []Param{{"a b", "1"}}, "a+b=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := encodeQuery(tt.params); got != tt.want {
				t.Errorf("encodeQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetMarketsQueryString(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/markets", func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		writeData(w, types.Page[types.Market]{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil, testLogger())
	if _, err := c.GetMarkets(context.Background(), MarketFilter{Status: "open", Page: 2}); err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}

	if got := gotQuery.Load(); got != "status=open&page=2" {
		t.Errorf("query = %q, want status=open&page=2", got)
	}
}

func TestGatewayUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/markets/btc-usd", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]any{
			"uid":       "mkt-1",
			"slug":      "btc-usd",
			"type":      "scalar",
			"num_ticks": "10000",
			"min_price": "4000000000000000000000",
			"max_price": "8000000000000000000000",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil, testLogger())
	market, err := c.GetMarket(context.Background(), "btc-usd")
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if market.Uid != "mkt-1" || market.Type != types.MarketScalar || market.NumTicks != "10000" {
		t.Errorf("unexpected market: %+v", market)
	}
}

func TestGatewayClassifiesAPIError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/markets/nope", func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, "market not found")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil, testLogger())
	_, err := c.GetMarket(context.Background(), "nope")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.URL == "" {
		t.Error("APIError.URL is empty, want the request URL attached")
	}
	if apiErr.SessionExpired() {
		t.Error("unrelated API error classified as session expiry")
	}
}

func TestGatewayNonJSONBodyIsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, testLogger())
	_, err := c.GetMarket(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("non-JSON body classified as *APIError: %v", err)
	}
}

func TestGatewayConnectionErrorIsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, nil, testLogger())
	_, err := c.GetMarket(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("connection failure classified as *APIError: %v", err)
	}
}

func TestGatewayOmitsAuthHeaderWithoutSession(t *testing.T) {
	t.Parallel()

	var gotAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/markets", func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		gotAuth.Store(present)
		writeData(w, types.Page[types.Market]{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil, testLogger())
	if _, err := c.GetMarkets(context.Background(), MarketFilter{}); err != nil {
		t.Fatalf("GetMarkets: %v", err)
	}
	if present, _ := gotAuth.Load().(bool); present {
		t.Error("Authorization header sent without a session")
	}
}
