package core

import "time"

type ProviderConfig interface {
	GetProviderURL() string
	GetHTTPTimeout() time.Duration
	GetRetries() int
	GetRateLimit() float64
	GetRateBurst() int
	GetMaxBodyBytes() int64
}

type WebConfig interface {
	GetListenAddr() string
	GetRefreshInterval() time.Duration
}
