package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetdeck/internal/app"
	"assetdeck/internal/domain"
	"assetdeck/internal/view"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Restore any saved session
	if cred, ok, err := bootstrap.Session.Load(); err == nil && ok {
		slog.Info("✅ Session restored", slog.String("user", cred.AuthUser))
	} else {
		slog.Info("ℹ️ No saved session, browsing anonymously")
	}

	// 4. Live asset list (crypto universe refreshes in the background)
	assetList := bootstrap.NewAssetList()
	defer assetList.Close()
	if err := assetList.SetCategory(ctx, view.CategoryCrypto); err != nil {
		slog.Error("Failed to load crypto symbols", slog.Any("error", err))
	} else {
		slog.Info("✅ Asset list loaded", slog.Int("symbols", len(assetList.Quotes())))
	}

	// 5. Chat channel
	if bootstrap.Chat != nil {
		remove := bootstrap.Chat.OnMessage(func(msg domain.ChatMessage) {
			slog.Info("💬 chat", slog.String("message", msg.Message), slog.String("sendAt", msg.SendAt))
		})
		defer remove()

		bootstrap.Chat.Activate(ctx)
		slog.InfoContext(ctx, "✅ Chat channel activated")
	}

	// 6. Periodically log the top of the live list
	ticker := time.NewTicker(time.Duration(bootstrap.Config.Live.PollIntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("🛑 Shutting down...")
			return
		case <-ticker.C:
			quotes := assetList.Quotes()
			for i, q := range quotes {
				if i >= 3 {
					break
				}
				slog.Info("📊 quote",
					slog.String("symbol", q.Symbol),
					slog.String("price", q.Price.String()),
					slog.String("changeRate", q.ChangeRate.String()))
			}
		}
	}
}
