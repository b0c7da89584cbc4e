package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrMissingSecret = errors.New("AUTH_TOKEN_SECRET is required in production")

// Config agrupa toda la configuración del servicio (todo viene de env).
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"local"`
	AppName string `env:"APP_NAME" envDefault:"pet-adoption"`
	Version string `env:"VERSION" envDefault:"dev"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Vacío => repos in-memory.
	DBDSN string `env:"DB_DSN"`

	// Vacío => sesiones in-memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	FrontendURL        string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	SessionCookie   string        `env:"SESSION_COOKIE" envDefault:"pet_adoption_session"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"2h"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`

	TokenSecret      string        `env:"AUTH_TOKEN_SECRET"`
	DevAuthHeader    bool          `env:"AUTH_DEV_HEADER" envDefault:"false"`
	PasswordResetTTL time.Duration `env:"AUTH_PASSWORD_RESET_TTL" envDefault:"60m"`
	BcryptCost       int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`

	// Vacío => uploader deshabilitado.
	CloudinaryURL string `env:"CLOUDINARY_URL"`

	// Vacío => notificaciones al log.
	RabbitURL      string `env:"RABBIT_URL"`
	NotifyExchange string `env:"NOTIFY_EXCHANGE" envDefault:"notifications"`
	NotifyQueue    string `env:"NOTIFY_QUEUE" envDefault:"notifications.email"`

	SMTP SMTP `envPrefix:"SMTP_"`

	Google   OAuthProvider `envPrefix:"GOOGLE_"`
	Facebook OAuthProvider `envPrefix:"FACEBOOK_"`
	GitHub   OAuthProvider `envPrefix:"GITHUB_"`

	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	TraceSample  float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1"`

	AuthRatePerMinute int `env:"RATE_LIMIT_AUTH_PER_MIN" envDefault:"20"`
}

type SMTP struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"1025"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@petadopt.local"`
	TLS      bool   `env:"TLS" envDefault:"false"`
}

type OAuthProvider struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URI"`
}

func (p OAuthProvider) Enabled() bool {
	return strings.TrimSpace(p.ClientID) != "" && strings.TrimSpace(p.ClientSecret) != ""
}

// Load lee la configuración del entorno del proceso.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default devuelve la config con solo los defaults (ignora el entorno). Pensado para tests.
func Default() *Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	if err := cfg.finish(); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

// AllowedOrigins: FRONTEND_URL + CORS_ALLOWED_ORIGINS, sin duplicados.
func (c *Config) AllowedOrigins() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 1+len(c.CORSAllowedOrigins))
	add := func(raw string) {
		o := strings.TrimRight(strings.TrimSpace(raw), "/")
		if o == "" {
			return
		}
		if u, err := url.Parse(o); err == nil && u.Scheme != "" && u.Host != "" {
			o = u.Scheme + "://" + u.Host
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	add(c.FrontendURL)
	for _, o := range c.CORSAllowedOrigins {
		add(o)
	}
	return out
}

func (c *Config) finish() error {
	c.FrontendURL = strings.TrimRight(strings.TrimSpace(c.FrontendURL), "/")
	if c.SessionLifetime <= 0 {
		c.SessionLifetime = 2 * time.Hour
	}
	if c.PasswordResetTTL <= 0 {
		c.PasswordResetTTL = 60 * time.Minute
	}

	if strings.TrimSpace(c.TokenSecret) == "" {
		if c.IsProduction() {
			return ErrMissingSecret
		}
		// Fuera de producción: secreto efímero (los tokens mueren con el proceso).
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate token secret: %w", err)
		}
		c.TokenSecret = hex.EncodeToString(b)
	}
	return nil
}
