package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// BackendBaseURL is the REST root of the ordering backend; SocketURL
	// is its live-update endpoint.
	BackendBaseURL string
	SocketURL      string

	// Anti-forgery pair handed to us by the hosting deployment. Either
	// may be empty, in which case the header is omitted on backend calls.
	CSRFHeader string
	CSRFToken  string

	PaymentPollInterval time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	return &Config{
		Port:                getEnv("PORT", "8000"),
		BackendBaseURL:      getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
		SocketURL:           getEnv("BACKEND_SOCKET_URL", "ws://localhost:8080/ws"),
		CSRFHeader:          os.Getenv("CSRF_HEADER"),
		CSRFToken:           os.Getenv("CSRF_TOKEN"),
		PaymentPollInterval: getEnvDuration("PAYMENT_POLL_INTERVAL", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %v", key, err)
	}
	return d
}
