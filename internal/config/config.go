package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	AppPort    string `env:"APP_PORT" envDefault:"8000"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`

	JWTSecret   string   `env:"JWT_SECRET"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// ESewaSecretKey may be empty; signing then fails per request instead of at boot.
	ESewaSecretKey   string `env:"ESEWA_SECRET_KEY"`
	ESewaProductCode string `env:"ESEWA_PRODUCT_CODE" envDefault:"EPAYTEST"`
	ESewaStatusURL   string `env:"ESEWA_STATUS_URL" envDefault:"https://rc-epay.esewa.com.np/api/epay/transaction/status/"`

	KhaltiSecretKey string `env:"KHALTI_SECRET_KEY"`
	KhaltiPublicKey string `env:"KHALTI_PUBLIC_KEY"`
	KhaltiVerifyURL string `env:"KHALTI_VERIFY_URL" envDefault:"https://khalti.com/api/v2/payment/verify/"`

	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"15s"`

	// PredictorURL is the crop recommendation model's HTTP endpoint.
	PredictorURL     string        `env:"PREDICTOR_URL" envDefault:"http://127.0.0.1:5000/predict"`
	PredictorTimeout time.Duration `env:"PREDICTOR_TIMEOUT" envDefault:"10s"`
}

// Parse reads the process environment into a Config without loading .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
