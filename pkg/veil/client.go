// Package veil implements the REST client for the Veil prediction-market
// platform.
//
// The client covers:
//   - session acquisition via a challenge/signature handshake
//     (POST /session_challenges, POST /sessions), with transparent bounded
//     re-authentication when the server reports an expired token
//   - quote → signed order submission (POST /quotes, POST /orders) with
//     decimal-to-tick normalization of trader-supplied amounts and prices
//   - order cancellation and lookups (DELETE /orders/{uid}, GET /orders)
//   - public market data: markets, order books, fills, oracle data feeds
//
// Amounts and prices are accepted as units.Quantity values, which carry
// either a human-readable decimal or an exact integer already in tick units.
package veil

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"veil-client/pkg/types"
	"veil-client/pkg/units"
)

// DefaultHost is the public testnet deployment of the platform API.
const DefaultHost = "https://api.kovan.veil.market"

const apiPrefix = "/api/v1"

const defaultTimeout = 10 * time.Second

// Signer is the wallet capability consumed by the client: an address, a
// personal-message signature for the session handshake, and an exchange
// order signature for quote submission. Implemented by pkg/wallet; a client
// built with a nil Signer can only use public read endpoints.
type Signer interface {
	Address() common.Address
	SignMessage(message []byte) (string, error)
	SignOrder(order *types.ZeroExOrder) (*types.SignedZeroExOrder, error)
}

// Client is the Veil REST API client. Safe for concurrent use; the session
// token is shared state with last-write-wins semantics on refresh.
type Client struct {
	gw       *gateway
	sessions *SessionStore
	signer   Signer
	rl       *RateLimiter
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout time.Duration
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// NewClient creates a client for the given API host ("" selects
// DefaultHost). signer may be nil for read-only use.
func NewClient(host string, signer Signer, logger *slog.Logger, opts ...Option) *Client {
	if host == "" {
		host = DefaultHost
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "veil")

	options := clientOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&options)
	}
	if options.timeout <= 0 {
		options.timeout = defaultTimeout
	}

	sessions := NewSessionStore()
	return &Client{
		gw:       newGateway(host, options.timeout, sessions, logger),
		sessions: sessions,
		signer:   signer,
		rl:       NewRateLimiter(),
		logger:   logger,
	}
}

// Sessions exposes the session store, mainly so callers can seed a cached
// session or observe the auth state.
func (c *Client) Sessions() *SessionStore {
	return c.sessions
}

// ————————————————————————————————————————————————————————————————————————
// Public market data
// ————————————————————————————————————————————————————————————————————————

// MarketFilter narrows GetMarkets. Zero values are omitted from the query.
type MarketFilter struct {
	Channel string // e.g. "btc", "eth", "politics"
	Status  string // "open" or "resolved"
	Page    int
}

func (f MarketFilter) params() []Param {
	var params []Param
	if f.Channel != "" {
		params = append(params, Param{"channel", f.Channel})
	}
	if f.Status != "" {
		params = append(params, Param{"status", f.Status})
	}
	if f.Page > 0 {
		params = append(params, Param{"page", fmt.Sprintf("%d", f.Page)})
	}
	return params
}

// PageOptions selects a page of a paginated endpoint. Page 0 is the first.
type PageOptions struct {
	Page int
}

func (o PageOptions) params() []Param {
	if o.Page > 0 {
		return []Param{{"page", fmt.Sprintf("%d", o.Page)}}
	}
	return nil
}

// GetMarkets lists markets matching the filter.
func (c *Client) GetMarkets(ctx context.Context, filter MarketFilter) (*types.Page[types.Market], error) {
	if err := c.rl.Read.Wait(ctx); err != nil {
		return nil, err
	}
	var page types.Page[types.Market]
	if err := c.gw.get(ctx, apiPrefix+"/markets", filter.params(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMarket fetches a single market by slug.
func (c *Client) GetMarket(ctx context.Context, slug string) (*types.Market, error) {
	if err := c.rl.Read.Wait(ctx); err != nil {
		return nil, err
	}
	var market types.Market
	if err := c.gw.get(ctx, apiPrefix+"/markets/"+slug, nil, &market); err != nil {
		return nil, err
	}
	return &market, nil
}

// GetBids returns the aggregated bid side of a market's order book for one
// outcome token.
func (c *Client) GetBids(ctx context.Context, market *types.Market, tokenType types.TokenType, opts PageOptions) (*types.Page[types.OrderBookRow], error) {
	return c.bookSide(ctx, market, tokenType, "bids", opts)
}

// GetAsks returns the aggregated ask side of a market's order book for one
// outcome token.
func (c *Client) GetAsks(ctx context.Context, market *types.Market, tokenType types.TokenType, opts PageOptions) (*types.Page[types.OrderBookRow], error) {
	return c.bookSide(ctx, market, tokenType, "asks", opts)
}

func (c *Client) bookSide(ctx context.Context, market *types.Market, tokenType types.TokenType, side string, opts PageOptions) (*types.Page[types.OrderBookRow], error) {
	if err := validateTokenType(tokenType); err != nil {
		return nil, err
	}
	if err := c.rl.Read.Wait(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/markets/%s/%s/%s", apiPrefix, market.Slug, tokenType, side)
	var page types.Page[types.OrderBookRow]
	if err := c.gw.get(ctx, path, opts.params(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrderFills returns executed fills for one outcome token of a market,
// newest first.
func (c *Client) GetOrderFills(ctx context.Context, market *types.Market, tokenType types.TokenType, opts PageOptions) (*types.Page[types.OrderFill], error) {
	if err := validateTokenType(tokenType); err != nil {
		return nil, err
	}
	if err := c.rl.Read.Wait(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/markets/%s/%s/order_fills", apiPrefix, market.Slug, tokenType)
	var page types.Page[types.OrderFill]
	if err := c.gw.get(ctx, path, opts.params(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDataFeed fetches the oracle time series behind an index market.
// scope narrows the window ("day", "week", "month"); "" returns the default.
func (c *Client) GetDataFeed(ctx context.Context, slug, scope string) (*types.DataFeed, error) {
	if err := c.rl.Read.Wait(ctx); err != nil {
		return nil, err
	}
	var params []Param
	if scope != "" {
		params = append(params, Param{"scope", scope})
	}
	var feed types.DataFeed
	if err := c.gw.get(ctx, apiPrefix+"/data_feeds/"+slug, params, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// GetScalarRange returns the [min, max] price bounds of a scalar market in
// human-readable units. Fails without a network call when the market does
// not carry wei-denominated bounds.
func (c *Client) GetScalarRange(market *types.Market) ([2]decimal.Decimal, error) {
	var bounds [2]decimal.Decimal
	if market.MinPrice == "" || market.MaxPrice == "" {
		return bounds, fmt.Errorf("market %q has no min/max price (not a scalar market)", market.Slug)
	}
	min, err := units.FromWei(market.MinPrice)
	if err != nil {
		return bounds, err
	}
	max, err := units.FromWei(market.MaxPrice)
	if err != nil {
		return bounds, err
	}
	bounds[0], bounds[1] = min, max
	return bounds, nil
}

// ————————————————————————————————————————————————————————————————————————
// Quotes and orders (session-scoped)
// ————————————————————————————————————————————————————————————————————————

// quoteRequest is the body of POST /quotes. Amount and price are integer
// tick strings after normalization.
type quoteRequest struct {
	Side        types.Side      `json:"side"`
	Token       string          `json:"token"`
	TokenAmount string          `json:"tokenAmount"`
	Price       string          `json:"price"`
	Type        types.QuoteType `json:"type"`
}

// CreateQuote requests a pricing commitment for a limit order. amount and
// price may be human decimals or exact tick values; both are normalized to
// integer ticks, and price is clamped to [0, numTicks].
func (c *Client) CreateQuote(ctx context.Context, market *types.Market, side types.Side, tokenType types.TokenType, amount, price units.Quantity) (*types.Quote, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("invalid side %q (must be %q or %q)", side, types.Buy, types.Sell)
	}
	if err := validateTokenType(tokenType); err != nil {
		return nil, err
	}

	tokenAmount, err := units.NormalizeShares(amount, market.NumTicks)
	if err != nil {
		return nil, fmt.Errorf("normalize amount: %w", err)
	}
	tickPrice, err := units.NormalizePrice(price, market.NumTicks)
	if err != nil {
		return nil, fmt.Errorf("normalize price: %w", err)
	}

	token := market.LongToken
	if tokenType == types.Short {
		token = market.ShortToken
	}

	req := quoteRequest{
		Side:        side,
		Token:       token,
		TokenAmount: tokenAmount,
		Price:       tickPrice,
		Type:        types.QuoteLimit,
	}

	var quote types.Quote
	err = c.authed(ctx, func() error {
		if err := c.rl.Trade.Wait(ctx); err != nil {
			return err
		}
		return c.gw.post(ctx, apiPrefix+"/quotes", req, &quote)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateOrder signs the exchange order embedded in a quote and submits it.
// Each quote is consumable exactly once; the server rejects reuse and
// expired quotes. options entries are forwarded verbatim alongside the
// order (e.g. "postOnly": true).
func (c *Client) CreateOrder(ctx context.Context, quote *types.Quote, options map[string]any) (*types.Order, error) {
	if c.signer == nil {
		return nil, ErrNoCredentials
	}

	signed, err := c.signer.SignOrder(&quote.ZeroExOrder)
	if err != nil {
		return nil, fmt.Errorf("sign order: %w", err)
	}

	body := map[string]any{
		"zeroExOrder": signed,
		"quoteUid":    quote.Uid,
	}
	for k, v := range options {
		body[k] = v
	}

	var order types.Order
	err = c.authed(ctx, func() error {
		if err := c.rl.Trade.Wait(ctx); err != nil {
			return err
		}
		return c.gw.post(ctx, apiPrefix+"/orders", body, &order)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("order placed", "uid", order.Uid, "side", order.Side, "price", order.Price)
	return &order, nil
}

// CancelOrder cancels a resting order by uid and returns its final state.
func (c *Client) CancelOrder(ctx context.Context, uid string) (*types.Order, error) {
	var order types.Order
	err := c.authed(ctx, func() error {
		if err := c.rl.Trade.Wait(ctx); err != nil {
			return err
		}
		return c.gw.delete(ctx, apiPrefix+"/orders/"+uid, &order)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("order cancelled", "uid", uid)
	return &order, nil
}

// GetUserOrders lists the authenticated user's orders. A non-nil market
// narrows the listing to that market.
func (c *Client) GetUserOrders(ctx context.Context, market *types.Market, opts PageOptions) (*types.Page[types.Order], error) {
	var params []Param
	if market != nil {
		params = append(params, Param{"market", market.Slug})
	}
	params = append(params, opts.params()...)

	var page types.Page[types.Order]
	err := c.authed(ctx, func() error {
		if err := c.rl.Read.Wait(ctx); err != nil {
			return err
		}
		return c.gw.get(ctx, apiPrefix+"/orders", params, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func validateTokenType(t types.TokenType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid token type %q (must be %q or %q)", t, types.Long, types.Short)
	}
	return nil
}
