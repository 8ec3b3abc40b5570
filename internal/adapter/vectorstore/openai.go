package vectorstore

import (
	"context"
	"strings"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

const (
	defaultMaxChunkTokens     = 800
	defaultChunkOverlapTokens = 400
)

// OpenAI handles OpenAI hosted vector stores used by the Assistants API.
type OpenAI struct {
	port.Base
}

func NewOpenAI() *OpenAI {
	return &OpenAI{Base: port.Base{Type: string(vs.OpenAI)}}
}

func (h *OpenAI) ValidateConfig(config map[string]any) error {
	if err := requireFields(config, "vector_store_name"); err != nil {
		return err
	}

	strategy := chunkingStrategy(config)
	if strategy != "auto" && strategy != "static" {
		return domain.Validationf("Chunking strategy must be 'auto' or 'static'")
	}
	if strategy == "static" {
		if err := optionalIntInRange(config, "max_chunk_size_tokens", 100, 4096, "Max chunk size must be between 100 and 4096 tokens"); err != nil {
			return err
		}
		if err := optionalIntInRange(config, "chunk_overlap_tokens", 0, 400, "Chunk overlap must be between 0 and 400 tokens"); err != nil {
			return err
		}
	}
	return optionalIntInRange(config, "expires_after_days", 1, 365, "Expiration days must be between 1 and 365")
}

func (h *OpenAI) ConfigSchema() vs.ConfigSchema {
	static := map[string]any{"chunking_strategy": "static"}
	return vs.ConfigSchema{Schema: schema.Schema{Fields: []schema.Field{
		{Name: "vector_store_name", Label: "Vector Store Name", Kind: schema.KindText, Required: true, Placeholder: "my-event-knowledge-base", Description: "Name for the OpenAI Vector Store"},
		{Name: "chunking_strategy", Label: "Chunking Strategy", Kind: schema.KindSelect, Default: "auto", Options: choices("auto", "Auto (Recommended)", "static", "Static (Custom sizes)"), Description: "How to split documents into chunks for embedding"},
		{Name: "max_chunk_size_tokens", Label: "Max Chunk Size (tokens)", Kind: schema.KindNumber, Default: defaultMaxChunkTokens, Min: schema.Bound(100), Max: schema.Bound(4096), Description: "Maximum tokens per chunk (only for static chunking)", ShowIf: static},
		{Name: "chunk_overlap_tokens", Label: "Chunk Overlap (tokens)", Kind: schema.KindNumber, Default: defaultChunkOverlapTokens, Min: schema.Bound(0), Max: schema.Bound(400), Description: "Token overlap between chunks (only for static chunking)", ShowIf: static},
		{Name: "expires_after_days", Label: "Expires After (days)", Kind: schema.KindNumber, Min: schema.Bound(1), Max: schema.Bound(365), Description: "Auto-delete after this many days of inactivity (leave empty for no expiration)"},
		{Name: "metadata_tags", Label: "Metadata Tags", Kind: schema.KindText, Placeholder: "event:conference,year:2026", Description: "Comma-separated key:value pairs for metadata"},
	}}}
}

// ToStorage fills in chunking defaults and parses metadata_tags into a
// metadata object. Supplied keys are kept unchanged.
func (h *OpenAI) ToStorage(config map[string]any) (string, error) {
	out := make(map[string]any, len(config)+4)
	for k, v := range config {
		out[k] = v
	}

	strategy := chunkingStrategy(config)
	if _, ok := out["chunking_strategy"]; !ok {
		out["chunking_strategy"] = strategy
	}
	if strategy == "static" {
		if !schema.Present(out["max_chunk_size_tokens"]) {
			out["max_chunk_size_tokens"] = defaultMaxChunkTokens
		}
		if !schema.Present(out["chunk_overlap_tokens"]) {
			out["chunk_overlap_tokens"] = defaultChunkOverlapTokens
		}
	}
	if _, ok := out["metadata"]; !ok {
		if tags := parseTags(schema.String(config["metadata_tags"])); len(tags) > 0 {
			out["metadata"] = tags
		}
	}
	return port.MergeStorage(h.Type, out)
}

func (h *OpenAI) TestConnection(context.Context, map[string]any) vs.ConnectionResult {
	return succeeded("OpenAI API connection test successful (simulated)")
}

// chunkingStrategy treats an absent or empty value as auto.
func chunkingStrategy(config map[string]any) string {
	v, ok := config["chunking_strategy"]
	if !ok || !schema.Present(v) {
		return "auto"
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// parseTags reads "k:v,k2:v2". Pairs without a colon are skipped.
func parseTags(s string) map[string]string {
	tags := map[string]string{}
	for _, pair := range schema.SplitList(s) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		tags[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return tags
}
