// veilctl — a command-line client for the Veil prediction-market API.
//
// Commands:
//
//	veilctl markets [channel]       — list open markets (optionally by channel)
//	veilctl market <slug>           — show one market
//	veilctl book <slug> <long|short> — show top of book for an outcome token
//	veilctl orders [slug]           — list your orders (optionally per market)
//	veilctl trade <slug> <buy|sell> <long|short> <amount> <price>
//	                                — place a limit order via quote + signature
//	veilctl cancel <uid>            — cancel an order
//	veilctl feed <slug> [scope]     — show an oracle data feed
//
// Config is read from configs/config.yaml (override with VEIL_CONFIG);
// the wallet key comes from VEIL_PRIVATE_KEY or the config file. Sessions
// are cached on disk so repeated invocations reuse the same token.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"veil-client/internal/config"
	"veil-client/internal/tokencache"
	"veil-client/pkg/types"
	"veil-client/pkg/units"
	"veil-client/pkg/veil"
	"veil-client/pkg/wallet"
)

func main() {
	cfgPath := "configs/config.yaml"
	if p := os.Getenv("VEIL_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", cfgPath)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Logging.Level)}
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)

	var signer veil.Signer
	if cfg.Wallet.PrivateKey != "" {
		w, err := wallet.New(cfg.Wallet.PrivateKey)
		if err != nil {
			logger.Error("failed to load wallet", "error", err)
			os.Exit(1)
		}
		signer = w
	}

	client := veil.NewClient(cfg.API.Host, signer, logger, veil.WithTimeout(cfg.API.Timeout))

	cache, err := tokencache.Open(cfg.Cache.Dir)
	if err != nil {
		logger.Error("failed to open session cache", "error", err)
		os.Exit(1)
	}
	if sess, err := cache.Load(); err != nil {
		logger.Warn("ignoring unreadable session cache", "error", err)
	} else if sess != nil {
		client.Sessions().Replace(sess)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, client, os.Args[1:]); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}

	// Persist whatever session the run ended with so the next invocation
	// skips the handshake.
	if sess := client.Sessions().Session(); sess != nil {
		if err := cache.Save(sess); err != nil {
			logger.Warn("failed to save session cache", "error", err)
		}
	}
}

func run(ctx context.Context, client *veil.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: veilctl <markets|market|book|orders|trade|cancel|feed> [args]")
	}

	switch args[0] {
	case "markets":
		filter := veil.MarketFilter{Status: "open"}
		if len(args) > 1 {
			filter.Channel = args[1]
		}
		page, err := client.GetMarkets(ctx, filter)
		if err != nil {
			return err
		}
		return printJSON(page)

	case "market":
		if len(args) < 2 {
			return fmt.Errorf("usage: veilctl market <slug>")
		}
		market, err := client.GetMarket(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(market)

	case "book":
		if len(args) < 3 {
			return fmt.Errorf("usage: veilctl book <slug> <long|short>")
		}
		market, err := client.GetMarket(ctx, args[1])
		if err != nil {
			return err
		}
		tokenType := types.TokenType(args[2])
		bids, err := client.GetBids(ctx, market, tokenType, veil.PageOptions{})
		if err != nil {
			return err
		}
		asks, err := client.GetAsks(ctx, market, tokenType, veil.PageOptions{})
		if err != nil {
			return err
		}
		if mid, ok := types.MidPrice(bids.Results, asks.Results); ok {
			fmt.Printf("mid price: %s ticks\n", mid.String())
		}
		return printJSON(map[string]any{"bids": bids, "asks": asks})

	case "orders":
		var market *types.Market
		if len(args) > 1 {
			m, err := client.GetMarket(ctx, args[1])
			if err != nil {
				return err
			}
			market = m
		}
		page, err := client.GetUserOrders(ctx, market, veil.PageOptions{})
		if err != nil {
			return err
		}
		return printJSON(page)

	case "trade":
		if len(args) < 6 {
			return fmt.Errorf("usage: veilctl trade <slug> <buy|sell> <long|short> <amount> <price>")
		}
		market, err := client.GetMarket(ctx, args[1])
		if err != nil {
			return err
		}
		amount, err := units.DecimalFromString(args[4])
		if err != nil {
			return err
		}
		price, err := units.DecimalFromString(args[5])
		if err != nil {
			return err
		}
		quote, err := client.CreateQuote(ctx, market, types.Side(args[2]), types.TokenType(args[3]), amount, price)
		if err != nil {
			return err
		}
		order, err := client.CreateOrder(ctx, quote, nil)
		if err != nil {
			return err
		}
		return printJSON(order)

	case "cancel":
		if len(args) < 2 {
			return fmt.Errorf("usage: veilctl cancel <uid>")
		}
		order, err := client.CancelOrder(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(order)

	case "feed":
		if len(args) < 2 {
			return fmt.Errorf("usage: veilctl feed <slug> [scope]")
		}
		scope := ""
		if len(args) > 2 {
			scope = args[2]
		}
		feed, err := client.GetDataFeed(ctx, args[1], scope)
		if err != nil {
			return err
		}
		return printJSON(feed)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
