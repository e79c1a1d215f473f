package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type WebConfig struct {
	ListenAddr     string `env:"FACTS_HTTP_ADDR,notEmpty" envDefault:"127.0.0.1:8080"`
	RefreshSeconds int    `env:"FACTS_REFRESH_SECONDS" envDefault:"1"`
}

func ParseWebConfig() (*WebConfig, error) {
	c := &WebConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c WebConfig) GetListenAddr() string {
	return c.ListenAddr
}

func (c WebConfig) GetRefreshInterval() time.Duration {
	if c.RefreshSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}
