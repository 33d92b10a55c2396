package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read once from the environment.
type Config struct {
	Port        string   `env:"PORT" envDefault:"5000"`
	AppEnv      string   `env:"APP_ENV" envDefault:"development"`
	AppBaseURL  string   `env:"APP_BASE_URL" envDefault:"http://localhost:5173"`
	PostgresURL string   `env:"POSTGRES_URL"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`

	JWTSecret   string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"168h"`
	AdminSecret string        `env:"ADMIN_SECRET" envDefault:"apna-doctor-admin-2024"`

	LoginRatePerMin int `env:"LOGIN_RATE_PER_MIN" envDefault:"20"`

	LLM    LLMConfig
	Gemini GeminiConfig
	SMTP   SMTPConfig
	Twilio TwilioConfig
	// FirebaseCredentials is a path to a service-account JSON file.
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS"`

	Storage StorageConfig

	SchedulerTZ string `env:"SCHEDULER_TZ"`
}

type LLMConfig struct {
	APIKey  string `env:"LLM_API_KEY"`
	BaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model   string `env:"LLM_MODEL" envDefault:"llama-3.3-70b-versatile"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	UseSSL   bool   `env:"SMTP_SSL" envDefault:"false"`
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	From       string `env:"TWILIO_FROM"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER" envDefault:"local"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION" envDefault:"ap-south-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// SchedulerLocation resolves SCHEDULER_TZ, falling back to the server's local zone.
func (c Config) SchedulerLocation() (*time.Location, error) {
	if c.SchedulerTZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.SchedulerTZ)
	if err != nil {
		return nil, fmt.Errorf("load SCHEDULER_TZ %q: %w", c.SchedulerTZ, err)
	}
	return loc, nil
}
