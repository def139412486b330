// Package types defines the shared data structures for the Veil client.
//
// This package is the common vocabulary for the library — order and market
// enums, wire records returned by the Veil REST API, and the generic Page
// container for paginated endpoints. It has no dependencies on other library
// packages, so it can be imported by any layer.
//
// All on-chain amounts (prices, token amounts, wei values) cross the wire as
// decimal strings of integers, never floats, to avoid precision loss.
package types

// ————————————————————————————————————————————————————————————————————————
// Core enums
// ————————————————————————————————————————————————————————————————————————

// Side represents the direction of an order or quote.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// TokenType selects one of a market's two outcome tokens.
type TokenType string

const (
	Long  TokenType = "long"
	Short TokenType = "short"
)

// Valid reports whether t is a known token type. Operations that take a
// TokenType reject anything else before issuing a network request.
func (t TokenType) Valid() bool {
	return t == Long || t == Short
}

// MarketType distinguishes binary (yes/no) markets from scalar markets,
// which have a continuous price range bounded by MinPrice/MaxPrice.
type MarketType string

const (
	MarketYesNo  MarketType = "yesno"
	MarketScalar MarketType = "scalar"
)

// OrderStatus is the server-side lifecycle state of a resting order.
// Orders move open → filled or open → canceled; the client never mutates
// an order locally.
type OrderStatus string

const (
	OrderOpen     OrderStatus = "open"
	OrderFilled   OrderStatus = "filled"
	OrderCanceled OrderStatus = "canceled"
	OrderExpired  OrderStatus = "expired"
)

// FillStatus is the settlement state of an order fill.
type FillStatus string

const (
	FillPending   FillStatus = "pending"
	FillCompleted FillStatus = "completed"
)

// QuoteType enumerates the supported quote/order kinds. The client only
// submits limit quotes.
type QuoteType string

const (
	QuoteLimit QuoteType = "limit"
)

// ————————————————————————————————————————————————————————————————————————
// Markets
// ————————————————————————————————————————————————————————————————————————

// Market describes one tradeable question. NumTicks is the total number of
// integer price ticks spanning the market's price range; every price and
// token amount submitted to the exchange is denominated in these ticks.
// MinPrice/MaxPrice are wei-denominated bounds, set only for scalar markets.
//
// A Market is immutable once fetched; re-fetch by slug for freshness.
type Market struct {
	Uid          string     `json:"uid"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Details      string     `json:"details"`
	Type         MarketType `json:"type"`
	Channel      string     `json:"channel"`
	Index        string     `json:"index"`
	CreatedAt    int64      `json:"created_at"` // unix millis
	EndsAt       int64      `json:"ends_at"`    // settlement deadline, unix millis
	NumTicks     string     `json:"num_ticks"`
	MinPrice     string     `json:"min_price"` // wei, scalar markets only
	MaxPrice     string     `json:"max_price"` // wei, scalar markets only
	LongToken    string     `json:"long_token"`
	ShortToken   string     `json:"short_token"`
	DenomToken   string     `json:"denomination_token"`
	FinalValue   string     `json:"final_value"` // set once the market resolves
	IsResolved   bool       `json:"is_resolved"`
	OpenInterest string     `json:"open_interest"` // wei
}

// ————————————————————————————————————————————————————————————————————————
// Quotes and orders
// ————————————————————————————————————————————————————————————————————————

// ZeroExOrder is the unsigned 0x exchange order descriptor embedded in a
// quote. All uint256 fields are decimal strings; asset data fields are
// 0x-prefixed hex.
type ZeroExOrder struct {
	SenderAddress         string `json:"senderAddress"`
	MakerAddress          string `json:"makerAddress"`
	TakerAddress          string `json:"takerAddress"`
	MakerFee              string `json:"makerFee"`
	TakerFee              string `json:"takerFee"`
	MakerAssetAmount      string `json:"makerAssetAmount"`
	TakerAssetAmount      string `json:"takerAssetAmount"`
	MakerAssetData        string `json:"makerAssetData"`
	TakerAssetData        string `json:"takerAssetData"`
	Salt                  string `json:"salt"`
	ExchangeAddress       string `json:"exchangeAddress"`
	FeeRecipientAddress   string `json:"feeRecipientAddress"`
	ExpirationTimeSeconds string `json:"expirationTimeSeconds"`
}

// SignedZeroExOrder is a ZeroExOrder plus its EIP-712 signature, ready for
// submission to the exchange.
type SignedZeroExOrder struct {
	ZeroExOrder
	Signature string `json:"signature"`
}

// Quote is a short-lived, server-issued pricing commitment. It carries the
// unsigned exchange order to be signed and submitted via CreateOrder before
// the server-side validity window lapses. Consumed exactly once.
type Quote struct {
	Uid            string      `json:"uid"`
	Side           Side        `json:"side"`
	Type           QuoteType   `json:"type"`
	Token          string      `json:"token"`
	TokenAmount    string      `json:"token_amount"`    // tick units
	CurrencyAmount string      `json:"currency_amount"` // wei
	Price          string      `json:"price"`           // tick units
	FeeAmount      string      `json:"fee_amount"`
	CreatedAt      int64       `json:"created_at"`
	ExpiresAt      int64       `json:"expires_at"`
	ZeroExOrder    ZeroExOrder `json:"zero_ex_order"`
}

// Order is a resting limit order as reported by the exchange.
type Order struct {
	Uid                 string      `json:"uid"`
	Status              OrderStatus `json:"status"`
	Side                Side        `json:"side"`
	Type                QuoteType   `json:"type"`
	TokenType           TokenType   `json:"token_type"`
	Token               string      `json:"token"`
	Price               string      `json:"price"`                 // tick units
	TokenAmount         string      `json:"token_amount"`          // requested, tick units
	TokenAmountUnfilled string      `json:"token_amount_unfilled"` // remaining, tick units
	CurrencyAmount      string      `json:"currency_amount"`       // wei
	PostOnly            bool        `json:"post_only"`
	CreatedAt           int64       `json:"created_at"`
	ExpiresAt           int64       `json:"expires_at"`
}

// OrderFill is an executed (partial or full) match against an order.
// Read-only from the client's perspective.
type OrderFill struct {
	Uid         string     `json:"uid"`
	Status      FillStatus `json:"status"`
	Side        Side       `json:"side"`
	TokenAmount string     `json:"token_amount"` // tick units
	Price       string     `json:"price"`        // tick units
	CreatedAt   int64      `json:"created_at"`
	CompletedAt int64      `json:"completed_at"`
}

// ————————————————————————————————————————————————————————————————————————
// Order book and data feeds
// ————————————————————————————————————————————————————————————————————————

// OrderBookRow is one aggregated price level of a market's bid or ask side.
type OrderBookRow struct {
	Price       string `json:"price"`        // tick units
	TokenAmount string `json:"token_amount"` // total resting amount, tick units
}

// DataFeedEntry is one oracle observation in a data feed.
type DataFeedEntry struct {
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// DataFeed is a named time series of oracle values backing index markets.
type DataFeed struct {
	Uid          string          `json:"uid"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Denomination string          `json:"denomination"`
	Entries      []DataFeedEntry `json:"entries"`
}

// ————————————————————————————————————————————————————————————————————————
// Sessions and pagination
// ————————————————————————————————————————————————————————————————————————

// Session is the bearer credential obtained from the challenge/signature
// handshake. It is valid until the server reports it expired or a new
// handshake replaces it.
type Session struct {
	Uid     string `json:"uid"`
	Token   string `json:"token"`
	Address string `json:"address"`
}

// Page is one page of a paginated result set. Concatenating all pages in
// order yields exactly Total items, assuming no concurrent mutation.
type Page[T any] struct {
	Results  []T `json:"results"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
