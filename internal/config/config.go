package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings"
	"time"

	"github.com/iliyamo/bali-villa-booking/internal/database"
)

// Data source names accepted by DATA_SOURCE.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database and JWT settings are only required when
// the live data source is selected; mock mode runs on the built-in dataset.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DataSource     string        // "live" or "mock"
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign admin JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for admin password hashing
	AdminEmail     string        // bootstrap admin account (optional)
	AdminPassword  string        // bootstrap admin password (optional)
	WhatsAppNumber string        // destination number for booking deep links
	MockDelay      time.Duration // artificial latency for simulated bookings
	RabbitMQURL    string        // broker for booking events (empty disables the queue)
	LogLevel       string
	LogFormat      string
	SMTP           SMTPConfig
	Push           PushConfig
}

// SMTPConfig configures the transactional mailer.  An empty Host disables email.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// PushConfig carries the VAPID key pair used for admin web push.
type PushConfig struct {
	PublicKey  string
	PrivateKey string
	Subject    string
}

// Database returns the MySQL connection settings.
func (c Config) Database() database.Settings {
	return database.Settings{User: c.DBUser, Password: c.DBPass, Host: c.DBHost, Port: c.DBPort, Name: c.DBName}
}

// MockMode reports whether the fixed fallback dataset is the selected source.
func (c Config) MockMode() bool { return c.DataSource == SourceMock }

// Load reads configuration values from environment variables and returns a
// Config.  In live mode, missing database or JWT variables cause the program
// to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DataSource:     strings.ToLower(envStr("DATA_SOURCE", SourceLive)),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		AdminEmail:     strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		WhatsAppNumber: envStr("WHATSAPP_NUMBER", "6281234567890"),
		MockDelay:      envDur("MOCK_DELAY", 800*time.Millisecond),
		RabbitMQURL:    firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogFormat:      envStr("LOG_FORMAT", "text"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envStr("SMTP_FROM", "reservations@balivillas.example"),
		},
		Push: PushConfig{
			PublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
			PrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
			Subject:    envStr("VAPID_SUBJECT", "mailto:admin@balivillas.example"),
		},
	}
	if cfg.DataSource != SourceMock {
		cfg.DataSource = SourceLive
		cfg.DBUser = must("DB_USER")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
		cfg.JWTSecret = must("JWT_SECRET")
		cfg.AccessTTLMin = mustInt("ACCESS_TOKEN_TTL_MIN")
		cfg.RefreshTTLDays = mustInt("REFRESH_TOKEN_TTL_DAYS")
		cfg.BcryptCost = mustInt("BCRYPT_COST")
		return cfg
	}
	// mock mode has no admin store; token settings only need sane defaults
	cfg.JWTSecret = envStr("JWT_SECRET", "mock-secret")
	cfg.AccessTTLMin = envInt("ACCESS_TOKEN_TTL_MIN", 60)
	cfg.RefreshTTLDays = envInt("REFRESH_TOKEN_TTL_DAYS", 7)
	cfg.BcryptCost = envInt("BCRYPT_COST", 10)
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
