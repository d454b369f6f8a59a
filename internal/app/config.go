package app

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/retry"
)

// Config holds everything the importer needs, loaded once at startup so
// a request never runs against missing secrets.
type Config struct {
	Server ServerConfig
	Sheets SheetsConfig
	GHL    GHLConfig
	Notify NotifyConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SheetsConfig holds the spreadsheet identity and service account
// credentials. Either CredentialsFile or the ClientEmail/PrivateKey pair
// must be set.
type SheetsConfig struct {
	SpreadsheetID   string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
	FetchRetry      retry.Config
}

// GHLConfig holds the CRM API key and endpoint.
type GHLConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NotifyConfig holds the optional ntfy summary notification settings.
type NotifyConfig struct {
	Enabled bool
	BaseURL string
	Topic   string
}

// Load reads configuration from the environment and validates required
// settings so the process fails fast on misconfiguration.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvWithDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
			ClientEmail:     os.Getenv("GOOGLE_CLIENT_EMAIL"),
			PrivateKey:      os.Getenv("GOOGLE_PRIVATE_KEY"),
			CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
			FetchRetry: retry.Config{
				MaxRetries: getEnvInt("SHEET_FETCH_RETRIES", 2),
				BaseDelay:  getEnvDuration("SHEET_FETCH_BASE_DELAY", 2*time.Second),
				MaxDelay:   getEnvDuration("SHEET_FETCH_MAX_DELAY", 30*time.Second),
				Timeout:    getEnvDuration("SHEET_FETCH_TIMEOUT", 15*time.Second),
			},
		},
		GHL: GHLConfig{
			APIKey:  os.Getenv("GHL_API_KEY"),
			BaseURL: os.Getenv("GHL_BASE_URL"),
			Timeout: getEnvDuration("GHL_TIMEOUT", 10*time.Second),
		},
		Notify: NotifyConfig{
			Enabled: getEnvWithDefault("NTFY_ENABLED", "false") == "true",
			BaseURL: getEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
			Topic:   getEnvWithDefault("NTFY_TOPIC", "ghl-sheet-import"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string

	if c.Sheets.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if c.GHL.APIKey == "" {
		missing = append(missing, "GHL_API_KEY")
	}
	if c.Sheets.CredentialsFile == "" {
		if c.Sheets.ClientEmail == "" {
			missing = append(missing, "GOOGLE_CLIENT_EMAIL")
		}
		if c.Sheets.PrivateKey == "" {
			missing = append(missing, "GOOGLE_PRIVATE_KEY")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// getEnvWithDefault fetches an environment variable with a default fallback.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt fetches an integer environment variable with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer in environment, using default")
		return defaultValue
	}
	return n
}

// getEnvDuration fetches a duration environment variable with a default fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration in environment, using default")
		return defaultValue
	}
	return d
}
