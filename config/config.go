package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Port    string
	AppEnv  string
	Service string

	// APIBaseURL is the storefront backend every client path is resolved against.
	APIBaseURL string
	// CartModule is the path prefix of the cart collection resource.
	CartModule     string
	RequestTimeout time.Duration
	// AuthHeader is sent verbatim as the Authorization header when set.
	AuthHeader string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	CloudWatchEnabled bool
}

// Load reads configuration from an optional .env file and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:              getEnv("PORT", "8000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		Service:           getEnv("SERVICE_NAME", "storefront-service"),
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		CartModule:        normalizePrefix(getEnv("CART_MODULE", "/api/cart")),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 10*time.Second),
		AuthHeader:        os.Getenv("API_AUTH_HEADER"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 40),
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalizePrefix makes sure the prefix starts with a slash and has none trailing.
func normalizePrefix(p string) string {
	p = strings.TrimRight(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
