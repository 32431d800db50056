package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Addr           string   `env:"PRR_ADDR" envDefault:":8080"`
	GRPCPort       int      `env:"PRR_GRPC_PORT" envDefault:"9000"`
	DBPath         string   `env:"PRR_DB"`
	Debug          bool     `env:"PRR_DEBUG"`
	Tracing        bool     `env:"PRR_TRACING"`
	APIKeyHash     string   `env:"PRR_API_KEY_HASH"` // bcrypt hash; empty disables auth
	RateLimit      int      `env:"PRR_RATE_LIMIT" envDefault:"60"`
	AllowedOrigins []string `env:"PRR_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,http://127.0.0.1:8080"`
}

// Load parses environment variables and command line flags to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg, err := LoadArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// LoadArgs is Load with explicit arguments.
func LoadArgs(args []string) (*Config, error) {
	cfg := &Config{}

	// Defaults and Environment Variables
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = getDefaultDBPath()
	}
	origins := strings.Join(cfg.AllowedOrigins, ",")

	// Command Line Flags (Override Env)
	fs := flag.NewFlagSet("prr", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.IntVar(&cfg.GRPCPort, "grpc", cfg.GRPCPort, "gRPC server port (0 disables)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
	fs.BoolVar(&cfg.Tracing, "tracing", cfg.Tracing, "Export traces to stdout")
	fs.StringVar(&cfg.APIKeyHash, "api-key-hash", cfg.APIKeyHash, "bcrypt hash of the API key guarding session writes")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Decode requests per minute per client")
	fs.StringVar(&origins, "origins", origins, "Allowed WebSocket origins (comma separated)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = parseList(origins)
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", cfg.RateLimit)
	}
	if cfg.GRPCPort < 0 || cfg.GRPCPort > 65535 {
		return nil, fmt.Errorf("grpc port out of range: %d", cfg.GRPCPort)
	}
	return cfg, nil
}

func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getDefaultDBPath returns the default database path in user's home directory.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "prr.db"
	}
	return filepath.Join(home, ".prr", "prr.db")
}
