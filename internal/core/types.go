package core

import "context"

const (
	AppName      = "Random Facts Explorer"
	AppUserAgent = "factdeck/0.1"
	AppVersion   = "0.1.0"
)

// Fact is a single item returned by the fact provider. An empty SourceURL
// means the provider did not name a source.
type Fact struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// FactProvider fetches one random fact per call.
type FactProvider interface {
	RandomFact(ctx context.Context) (Fact, error)
}
