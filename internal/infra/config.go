package infra

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every knob the client needs: one section per backend service
// plus live-data and logging settings. LoadConfig fills it from YAML and then
// lets environment variables override individual values.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		TimeoutSec int `yaml:"timeout_sec"`

		Asset struct {
			BaseURL string `yaml:"base_url"`
			WSURL   string `yaml:"ws_url"`
		} `yaml:"asset"`

		Auth struct {
			BaseURL string `yaml:"base_url"`
			// LoginSentinel is the literal response body the auth service
			// returns on success instead of a structured status field.
			LoginSentinel string `yaml:"login_sentinel"`
		} `yaml:"auth"`

		Board struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"board"`

		Chat struct {
			BaseURL string `yaml:"base_url"`
			WSURL   string `yaml:"ws_url"`
		} `yaml:"chat"`

		News struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"news"`

		Alert struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"alert"`
	} `yaml:"api"`

	Live struct {
		PollIntervalSec int `yaml:"poll_interval_sec"`
		ThrottleSec     int `yaml:"throttle_sec"`
	} `yaml:"live"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads the config file and parses it. A .env file in the working
// directory is loaded first so it can feed the environment overrides.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity before anything connects.
func (c *Config) Validate() error {
	if c.API.Asset.BaseURL == "" {
		return fmt.Errorf("asset base URL is required")
	}
	if c.API.Asset.WSURL != "" && !hasWSPrefix(c.API.Asset.WSURL) {
		return fmt.Errorf("invalid asset WS URL: %s", c.API.Asset.WSURL)
	}
	if c.API.Chat.WSURL != "" && !hasWSPrefix(c.API.Chat.WSURL) {
		return fmt.Errorf("invalid chat WS URL: %s", c.API.Chat.WSURL)
	}
	if c.API.TimeoutSec <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}
	if c.Live.PollIntervalSec <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.Live.ThrottleSec <= 0 {
		return fmt.Errorf("throttle window must be positive")
	}
	return nil
}

func hasWSPrefix(s string) bool {
	return hasPrefix(s, "ws://") || hasPrefix(s, "wss://")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv applies environment variables on top of file values.
// Environment takes precedence over the config file.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ASSETDECK_ASSET_URL"); v != "" {
		cfg.API.Asset.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_ASSET_WS_URL"); v != "" {
		cfg.API.Asset.WSURL = v
	}
	if v := os.Getenv("ASSETDECK_AUTH_URL"); v != "" {
		cfg.API.Auth.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_BOARD_URL"); v != "" {
		cfg.API.Board.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_CHAT_URL"); v != "" {
		cfg.API.Chat.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_CHAT_WS_URL"); v != "" {
		cfg.API.Chat.WSURL = v
	}
	if v := os.Getenv("ASSETDECK_NEWS_URL"); v != "" {
		cfg.API.News.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_ALERT_URL"); v != "" {
		cfg.API.Alert.BaseURL = v
	}
	if v := os.Getenv("ASSETDECK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ASSETDECK_POLL_INTERVAL_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.Live.PollIntervalSec = sec
		}
	}
}
