package vectorstore

import (
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
)

// requireFields fails on the first field whose value is missing or empty.
func requireFields(config map[string]any, names ...string) error {
	for _, name := range names {
		if !schema.Truthy(config[name]) {
			return domain.Validationf("Missing required field: %s", name)
		}
	}
	return nil
}

// optionalIntInRange checks an optional integer field when it was supplied.
func optionalIntInRange(config map[string]any, name string, lo, hi int64, msg string) error {
	v, ok := config[name]
	if !ok || !schema.Present(v) {
		return nil
	}
	if !schema.IntInRange(v, lo, hi) {
		return domain.Validationf("%s", msg)
	}
	return nil
}

func failed(msg string) vs.ConnectionResult {
	return vs.ConnectionResult{OK: false, Message: msg}
}

func succeeded(msg string) vs.ConnectionResult {
	return vs.ConnectionResult{OK: true, Message: msg}
}

func choices(values ...string) []schema.Option {
	out := make([]schema.Option, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, schema.Option{Value: values[i], Label: values[i+1]})
	}
	return out
}
