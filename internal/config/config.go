// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultGatewayURL is the public Echo REST gateway.
const DefaultGatewayURL = "https://echo-server-alhh.onrender.com/api"

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Gateway   GatewayConfig
	Server    ServerConfig
	Catalog   CatalogConfig
	Dashboard DashboardConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// GatewayConfig holds the remote REST gateway settings.
type GatewayConfig struct {
	BaseURL string        // Gateway API root (default: public Echo gateway)
	Timeout time.Duration // Per-request timeout (default: 15s)
	RPS     float64       // Outbound requests per second (default: 10, <=0 disables)
	Burst   int           // Outbound burst (default: 20)
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed browser origins (default: *)
	AdminRPS     float64       // Admin writes per second per client IP (default: 5, <=0 disables)
	AdminBurst   int           // Admin write burst per client IP (default: 20)
}

// CatalogConfig holds public catalog view settings.
type CatalogConfig struct {
	FeaturedLimit int // Featured items on the home view (default: 10)
	RelatedLimit  int // Related items on the item view (default: 8)
}

// DashboardConfig holds admin dashboard settings.
type DashboardConfig struct {
	RefreshInterval time.Duration // Stats poll interval (default: 60s)
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("echo-web", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	// Gateway flags
	gatewayURL := fs.String("gateway-url", "", "Gateway API base URL")
	gatewayTimeout := fs.String("gateway-timeout", "", "Gateway request timeout (default: 15s)")
	gatewayRPS := fs.String("gateway-rps", "", "Gateway requests per second (default: 10)")
	gatewayBurst := fs.String("gateway-burst", "", "Gateway request burst (default: 20)")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed origins (default: *)")
	adminRPS := fs.String("admin-rps", "", "Admin writes per second per client (default: 5)")
	adminBurst := fs.String("admin-burst", "", "Admin write burst per client (default: 20)")

	featuredLimit := fs.String("featured-limit", "", "Featured items on the home view (default: 10)")
	relatedLimit := fs.String("related-limit", "", "Related items on the item view (default: 8)")
	dashboardRefresh := fs.String("dashboard-refresh", "", "Dashboard stats refresh interval (default: 60s)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Gateway: GatewayConfig{
			BaseURL: strings.TrimRight(getConfigValue(*gatewayURL, "GATEWAY_URL", DefaultGatewayURL), "/"),
			Burst:   getIntConfigValue(*gatewayBurst, "GATEWAY_BURST", 20),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
			AdminBurst:  getIntConfigValue(*adminBurst, "ADMIN_BURST", 20),
		},
		Catalog: CatalogConfig{
			FeaturedLimit: getIntConfigValue(*featuredLimit, "FEATURED_LIMIT", 10),
			RelatedLimit:  getIntConfigValue(*relatedLimit, "RELATED_LIMIT", 8),
		},
	}

	rpsStr := getConfigValue(*gatewayRPS, "GATEWAY_RPS", "10")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway rps %q: %w", rpsStr, err)
	}
	cfg.Gateway.RPS = rps

	adminRPSStr := getConfigValue(*adminRPS, "ADMIN_RPS", "5")
	if cfg.Server.AdminRPS, err = strconv.ParseFloat(adminRPSStr, 64); err != nil {
		return nil, fmt.Errorf("invalid admin rps %q: %w", adminRPSStr, err)
	}

	durations := []struct {
		name   string
		flag   string
		envKey string
		def    string
		dst    *time.Duration
	}{
		{"gateway timeout", *gatewayTimeout, "GATEWAY_TIMEOUT", "15s", &cfg.Gateway.Timeout},
		{"read timeout", *readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{"write timeout", *writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{"idle timeout", *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"dashboard refresh", *dashboardRefresh, "DASHBOARD_REFRESH", "60s", &cfg.Dashboard.RefreshInterval},
	}
	for _, d := range durations {
		s := getConfigValue(d.flag, d.envKey, d.def)
		v, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.name, s, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid gateway url: %q (must be an absolute http or https URL)", c.Gateway.BaseURL)
	}

	if c.Gateway.Timeout <= 0 {
		return errors.New("gateway timeout must be positive")
	}

	if c.Dashboard.RefreshInterval <= 0 {
		return errors.New("dashboard refresh interval must be positive")
	}

	if c.Catalog.FeaturedLimit < 1 || c.Catalog.RelatedLimit < 0 {
		return fmt.Errorf("invalid catalog limits: featured=%d related=%d", c.Catalog.FeaturedLimit, c.Catalog.RelatedLimit)
	}

	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real env vars take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
