package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr        string
	DataPath    string
	BalancePath string
	AuthToken   string
	AIBaseURL   string
	AIAPIKey    string
	AIModel     string
	AIDisabled  bool
	HTTPTimeout time.Duration
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("STARMAKER_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:        addr,
		DataPath:    envDefault("STARMAKER_DATA_PATH", defaultDataPath()),
		BalancePath: strings.TrimSpace(os.Getenv("STARMAKER_BALANCE_PATH")),
		AuthToken:   strings.TrimSpace(os.Getenv("STARMAKER_AUTH_TOKEN")),
		AIBaseURL:   envDefault("STARMAKER_AI_BASE_URL", "https://api.groq.com/openai/v1"),
		AIAPIKey:    strings.TrimSpace(os.Getenv("STARMAKER_AI_API_KEY")),
		AIModel:     envDefault("STARMAKER_AI_MODEL", "llama-3.3-70b-versatile"),
		AIDisabled:  envBoolDefault("STARMAKER_AI_DISABLED", false),
		HTTPTimeout: envDurationDefault("STARMAKER_HTTP_TIMEOUT", 60*time.Second),
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("STARMAKER_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "starmaker.db"
	}
	return filepath.Join(home, ".starmaker", "starmaker.db")
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
