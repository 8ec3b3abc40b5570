// Package vectorstore implements provider-specific configuration handlers.
package vectorstore

import (
	"net/http"
	"time"

	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

const simulatedSuccess = "Connection test successful (simulated)"

// Options controls connection testing.
// With Probe false every handler reports a simulated success.
type Options struct {
	Probe      bool
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 10 * time.Second
	}
	return o.Timeout
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.timeout()}
}

// NewRegistry returns a registry holding every implemented handler, with
// ComingSoon as the fallback.
func NewRegistry(opts Options) *port.Registry {
	reg := port.NewRegistry(func(p string) port.Handler { return NewComingSoon(p) })
	reg.Register(string(vs.AWSOpenSearch), func() port.Handler { return NewOpenSearch(opts) })
	reg.Register(string(vs.AWSAuroraPgVector), func() port.Handler { return NewAuroraPgVector(opts) })
	reg.Register(string(vs.MongoDBAtlas), func() port.Handler { return NewMongoDBAtlas(opts) })
	reg.Register(string(vs.Neo4j), func() port.Handler { return NewNeo4j() })
	reg.Register(string(vs.OpenAI), func() port.Handler { return NewOpenAI() })
	return reg
}
