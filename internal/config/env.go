package config

import (
	"errors"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"relay/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ProviderTwilio      = "twilio"
	ProviderMessageBird = "messagebird"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Env struct {
	AppAddr string `env:"APP_ADDR" env-default:":3001"`
	GinMode string `env:"GIN_MODE"`

	Provider string `env:"MESSAGING_PROVIDER" env-default:"twilio"`
	Channel  string `env:"MESSAGING_CHANNEL" env-default:"whatsapp"`

	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	MessageBirdKey    string `env:"MESSAGEBIRD_ACCESS_KEY"`
	SenderPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`
	DriverPhoneNumber string `env:"DRIVER_PHONE_NUMBER"`

	ForwardTimeout     time.Duration `env:"FORWARD_TIMEOUT" env-default:"15s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	Payment Payment
	Store   Store
}

// Payment configures the link placed in online payment confirmations.
type Payment struct {
	PayeeID  string `env:"YOUR_UPI_ID" env-default:"your-upi-id@okhdfcbank"`
	AppName  string `env:"PAYMENT_APP_NAME" env-default:"TrustnDrive"`
	Currency string `env:"PAYMENT_CURRENCY" env-default:"INR"`
	Scheme   string `env:"PAYMENT_SCHEME" env-default:"upi"`
}

type Store struct {
	Kind          string        `env:"RIDE_STORE" env-default:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	RideTTL       time.Duration `env:"RIDE_TTL" env-default:"6h"`
}

// DefaultCORSOrigins is used when CORS_ALLOWED_ORIGINS is empty.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads .env when present, then the process environment, and
// validates the result. Any error it returns is a domain.ConfigError.
func LoadEnv() (Env, error) {
	return LoadEnvFile(".env")
}

func LoadEnvFile(path string) (Env, error) {
	var env Env
	if err := cleanenv.ReadConfig(path, &env); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Env{}, domain.ConfigError{Msg: err.Error()}
		}
		env = Env{}
		if err := cleanenv.ReadEnv(&env); err != nil {
			return Env{}, domain.ConfigError{Msg: err.Error()}
		}
	}
	env.normalize()
	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e *Env) normalize() {
	e.AppAddr = strings.TrimSpace(e.AppAddr)
	e.GinMode = strings.TrimSpace(e.GinMode)
	e.Provider = strings.ToLower(strings.TrimSpace(e.Provider))
	e.Channel = strings.ToLower(strings.TrimSpace(e.Channel))
	e.SenderPhoneNumber = strings.TrimSpace(e.SenderPhoneNumber)
	e.DriverPhoneNumber = strings.TrimSpace(e.DriverPhoneNumber)
	e.Store.Kind = strings.ToLower(strings.TrimSpace(e.Store.Kind))

	origins := make([]string, 0, len(e.CORSAllowedOrigins))
	for _, o := range e.CORSAllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = append(origins, DefaultCORSOrigins...)
	}
	e.CORSAllowedOrigins = origins
}

// Validate collects every missing required variable into one ConfigError.
func (e Env) Validate() error {
	var missing []string
	switch e.Provider {
	case ProviderTwilio:
		if strings.TrimSpace(e.TwilioAccountSID) == "" {
			missing = append(missing, "TWILIO_ACCOUNT_SID")
		}
		if strings.TrimSpace(e.TwilioAuthToken) == "" {
			missing = append(missing, "TWILIO_AUTH_TOKEN")
		}
	case ProviderMessageBird:
		if strings.TrimSpace(e.MessageBirdKey) == "" {
			missing = append(missing, "MESSAGEBIRD_ACCESS_KEY")
		}
	default:
		return domain.ConfigError{Msg: "unknown MESSAGING_PROVIDER " + e.Provider}
	}
	if e.SenderPhoneNumber == "" {
		missing = append(missing, "TWILIO_PHONE_NUMBER")
	}
	if e.DriverPhoneNumber == "" {
		missing = append(missing, "DRIVER_PHONE_NUMBER")
	}
	if len(missing) > 0 {
		return domain.ConfigError{Missing: missing}
	}

	switch e.Store.Kind {
	case StoreMemory, StoreRedis:
	default:
		return domain.ConfigError{Msg: "unknown RIDE_STORE " + e.Store.Kind}
	}
	if e.Store.Kind == StoreRedis && strings.TrimSpace(e.Store.RedisAddr) == "" {
		return domain.ConfigError{Missing: []string{"REDIS_ADDR"}}
	}
	if e.ForwardTimeout <= 0 {
		return domain.ConfigError{Msg: "FORWARD_TIMEOUT must be positive"}
	}
	return validateOrigins(e.CORSAllowedOrigins)
}

// validateOrigins rejects entries the CORS middleware would panic on. "*" is
// accepted only as the sole entry.
func validateOrigins(origins []string) error {
	for _, o := range origins {
		if o == "*" {
			if len(origins) > 1 {
				return domain.ConfigError{Msg: "CORS_ALLOWED_ORIGINS: \"*\" cannot be combined with other origins"}
			}
			continue
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" ||
			strings.Contains(o, "*") || strings.Trim(u.Path, "/") != "" {
			return domain.ConfigError{Msg: "invalid CORS_ALLOWED_ORIGINS entry " + o}
		}
	}
	return nil
}
