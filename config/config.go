package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	DefaultPaymentBaseURL = "https://example-pay.test/checkout"
)

type Config struct {
	ServicePort      string
	StoreConfig      StoreConfig
	PaymentBaseURL   string
	JWTSecret        string
	PasswordHashing  bool
	CORSAllowOrigins []string
	LogLevel         string
	GinMode          string
}

type StoreConfig struct {
	Driver      string
	URL         string
	Name        string
	SeedOnStart bool
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("PORT", "8000"),
		StoreConfig: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
			URL:         os.Getenv("DATABASE_URL"),
			Name:        getEnv("DATABASE_NAME", "ecommerce"),
			SeedOnStart: getBool("SEED_ON_START", true),
		},
		PaymentBaseURL:   strings.TrimRight(getEnv("PAYMENT_BASE_URL", DefaultPaymentBaseURL), "/"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		PasswordHashing:  getBool("PASSWORD_HASHING", false),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		GinMode:          os.Getenv("GIN_MODE"),
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
