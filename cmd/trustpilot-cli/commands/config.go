package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"trustpilot-collector/internal/scrapers/trustpilot"
	"trustpilot-collector/pkg/configutil"

	"github.com/spf13/pflag"
)

// Config is the content of trustpilot.json5. Keys missing from the file take the default,
// keys that are present win even when set to 0, false or "". Flags take precedence over
// everything in the file.
type Config struct {
	BaseUrl                 string             `json:"base_url"`
	UserAgent               string             `json:"user_agent"`
	TimeoutSeconds          int                `json:"timeout_seconds"`
	MaxRedirects            int                `json:"max_redirects"`
	DisableCloudflareBypass bool               `json:"disable_cloudflare_bypass"`
	Count                   int                `json:"count"`
	OrderBy                 trustpilot.OrderBy `json:"order_by"`
	Order                   trustpilot.Order   `json:"order"`
}

func DefaultConfig() Config {
	client := trustpilot.DefaultClientOptions()
	opts := trustpilot.DefaultOptions("")
	return Config{
		BaseUrl:        client.BaseUrl,
		UserAgent:      client.UserAgent,
		TimeoutSeconds: int(client.Timeout / time.Second),
		MaxRedirects:   client.MaxRedirects,
		Count:          opts.Count,
		OrderBy:        opts.OrderBy,
		Order:          opts.Order,
	}
}

// loadConfig reads the config at path, a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, DefaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

func (c Config) ClientOptions() trustpilot.ClientOptions {
	return trustpilot.ClientOptions{
		BaseUrl:          c.BaseUrl,
		UserAgent:        c.UserAgent,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRedirects:     c.MaxRedirects,
		CloudflareBypass: !c.DisableCloudflareBypass,
	}
}

// Options builds the collector options for businessId, flags that were explicitly set
// win over the config.
func (c Config) Options(businessId string, flags *pflag.FlagSet) (trustpilot.Options, error) {
	opts := trustpilot.Options{
		BusinessId: businessId,
		Count:      c.Count,
		OrderBy:    c.OrderBy,
		Order:      c.Order,
	}

	var err error
	if flags.Changed("count") {
		opts.Count, err = flags.GetInt("count")
		if err != nil {
			return trustpilot.Options{}, err
		}
	}
	if flags.Changed("order-by") {
		value, err := flags.GetString("order-by")
		if err != nil {
			return trustpilot.Options{}, err
		}
		opts.OrderBy = trustpilot.OrderBy(value)
	}
	if flags.Changed("order") {
		value, err := flags.GetString("order")
		if err != nil {
			return trustpilot.Options{}, err
		}
		opts.Order = trustpilot.Order(value)
	}

	return opts, opts.Validate()
}
