package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"assetdeck/internal/api"
	"assetdeck/internal/infra"
	"assetdeck/internal/realtime"
	"assetdeck/internal/session"
	"assetdeck/internal/view"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Session *session.Store

	Auth    *api.AuthClient
	Assets  *api.AssetClient
	Board   *api.BoardClient
	ChatAPI *api.ChatClient
	News    *api.NewsClient
	Alerts  *api.AlertClient

	Chat *realtime.ChatChannel
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (Config, DB, API clients).
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping AssetDeck...")

	// 1. Load Config (Dynamic Path Resolution)
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Session Store (WAL DB under the workspace)
	workDir := infra.GetWorkspaceDir()
	dataDir := filepath.Join(workDir, "data")
	if err := infra.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "session.db")
	store, err := session.Open(dbPath)
	if err != nil {
		return err
	}
	b.Session = store
	slog.Info("✅ Session store initialized (WAL-mode)", "path", dbPath)

	// 4. API clients. Every client reads credentials from the same store;
	// only the auth client writes it.
	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	throttle := time.Duration(cfg.Live.ThrottleSec) * time.Second

	b.Auth = api.NewAuthClient(cfg.API.Auth.BaseURL, timeout, store, cfg.API.Auth.LoginSentinel)
	b.Assets = api.NewAssetClient(cfg.API.Asset.BaseURL, timeout, store, throttle)
	b.Board = api.NewBoardClient(cfg.API.Board.BaseURL, timeout, store)
	b.ChatAPI = api.NewChatClient(cfg.API.Chat.BaseURL, timeout, store)
	b.News = api.NewNewsClient(cfg.API.News.BaseURL, timeout, store)
	b.Alerts = api.NewAlertClient(cfg.API.Alert.BaseURL, timeout, store)
	slog.Info("✅ API clients ready")

	// 5. Chat channel (connects on Activate, not here)
	if cfg.API.Chat.WSURL != "" {
		b.Chat = realtime.NewChatChannel(cfg.API.Chat.WSURL)
	}

	return nil
}

// NewAssetList builds the asset-list controller wired to the asset client
// and the configured live poll interval.
func (b *Bootstrap) NewAssetList() *view.AssetListController {
	interval := time.Duration(b.Config.Live.PollIntervalSec) * time.Second
	return view.NewAssetListController(b.Assets, interval)
}

// NewBoard builds a board controller with the given page size.
func (b *Bootstrap) NewBoard(pageSize int) *view.BoardController {
	return view.NewBoardController(b.Board, pageSize)
}

// NewPost builds a post-detail controller with the given comment page size.
func (b *Bootstrap) NewPost(pageSize int) *view.PostController {
	return view.NewPostController(b.Board, pageSize)
}

// NewNotifications builds the notification list for one user.
func (b *Bootstrap) NewNotifications(email string) *view.NotificationsController {
	return view.NewNotificationsController(b.Alerts, email)
}

// Close releases everything Initialize opened.
func (b *Bootstrap) Close() {
	if b.Chat != nil {
		b.Chat.Deactivate()
	}
	if b.Session != nil {
		if err := b.Session.Close(); err != nil {
			slog.Warn("session store close failed", slog.Any("error", err))
		}
	}
}
