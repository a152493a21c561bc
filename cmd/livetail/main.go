package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"assetdeck/internal/domain"
	"assetdeck/internal/infra"
	"assetdeck/internal/realtime"
)

// livetail subscribes to one symbol's push stream and prints every quote.
// Handy for checking a market-data gateway without the full app.
func main() {
	symbol := flag.String("symbol", "KRW-BTC", "symbol to follow")
	wsURL := flag.String("ws", "", "market-data WS base URL (default from config)")
	flag.Parse()

	base := *wsURL
	if base == "" {
		cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		base = cfg.API.Asset.WSURL
	}
	if base == "" {
		fmt.Fprintln(os.Stderr, "no WS URL configured, pass -ws")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("=== AssetDeck Live Tail: %s ===\n", *symbol)

	socket, err := realtime.SubscribeLive(ctx, base, *symbol, func(q domain.Quote) {
		fmt.Printf("📊 %-12s  %s  (%s%%)\n", q.Symbol, q.Price.String(), q.ChangeRate.String())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "subscribe: %v\n", err)
		os.Exit(1)
	}
	defer socket.Close()

	<-ctx.Done()
	fmt.Println("✅ done")
}
