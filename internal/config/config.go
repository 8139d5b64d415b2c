package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config collects every tunable of the service. Values come from the
// environment with defaults matching the upstream holiday-cn repo.
type Config struct {
	Addr    string `validate:"required"`
	DataDir string `validate:"required"`

	RepoOwner  string `validate:"required"`
	RepoName   string `validate:"required"`
	RepoPath   string
	RepoBranch string `validate:"required"`
	Token      string

	RefreshInterval time.Duration `validate:"min=60000000000"` // at least 1m
	GitHubRPS       int           `validate:"gte=1"`

	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"gte=1"`

	AdminTokenHash string
	AllowedOrigins []string
}

// Load reads .env.local (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	githubRPS, err := getEnvInt("GITHUB_RPS", 2)
	if err != nil {
		return Config{}, err
	}
	rateLimitRPS, err := getEnvFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return Config{}, err
	}
	rateLimitBurst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:            getEnv("APP_ADDR", ":8080"),
		DataDir:         getEnv("HOLIDAY_DATA_DIR", "data/holidays"),
		RepoOwner:       getEnv("HOLIDAY_GH_OWNER", "NateScarlet"),
		RepoName:        getEnv("HOLIDAY_GH_REPO", "holiday-cn"),
		RepoPath:        strings.Trim(os.Getenv("HOLIDAY_GH_PATH"), "/"),
		RepoBranch:      getEnv("HOLIDAY_GH_BRANCH", "master"),
		Token:           os.Getenv("GITHUB_TOKEN"),
		RefreshInterval: refreshInterval,
		GitHubRPS:       githubRPS,
		RateLimitRPS:    rateLimitRPS,
		RateLimitBurst:  rateLimitBurst,
		AdminTokenHash:  os.Getenv("ADMIN_TOKEN_HASH"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
