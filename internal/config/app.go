package config

import (
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	RuntimePath string `env:"FACTS_RUNTIME_PATH" envMarshal:"-"`

	// Fact provider
	ProviderURL  string        `env:"FACTS_PROVIDER_URL,notEmpty" envDefault:"https://uselessfacts.jsph.pl"`
	HTTPTimeout  time.Duration `env:"FACTS_HTTP_TIMEOUT" envDefault:"0s"`
	Retries      int           `env:"FACTS_RETRIES" envDefault:"0"`
	RateLimit    float64       `env:"FACTS_RATE_LIMIT" envDefault:"2"`
	RateBurst    int           `env:"FACTS_RATE_BURST" envDefault:"1"`
	MaxBodyBytes int64         `env:"FACTS_MAX_BODY" envDefault:"65536"`
}

// ParseAppConfig reads AppConfig from the environment without exiting on error.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = GetRuntimePath()
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "facts.log")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetProviderURL() string {
	return c.ProviderURL
}

func (c AppConfig) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}

func (c AppConfig) GetRetries() int {
	return c.Retries
}

func (c AppConfig) GetRateLimit() float64 {
	return c.RateLimit
}

func (c AppConfig) GetRateBurst() int {
	return c.RateBurst
}

func (c AppConfig) GetMaxBodyBytes() int64 {
	return c.MaxBodyBytes
}
