package vectorstore

import (
	"context"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

// Neo4j handles Neo4j vector index configuration. Connection tests are simulated.
type Neo4j struct {
	port.Base
}

func NewNeo4j() *Neo4j {
	return &Neo4j{Base: port.Base{Type: string(vs.Neo4j)}}
}

func (h *Neo4j) ValidateConfig(config map[string]any) error {
	if err := requireFields(config, "index_name"); err != nil {
		return err
	}
	return optionalIntInRange(config, "dimension", 1, 4096, "Dimension must be an integer between 1 and 4096")
}

func (h *Neo4j) ConfigSchema() vs.ConfigSchema {
	graphRAG := map[string]any{"enable_graph_rag": true}
	return vs.ConfigSchema{Schema: schema.Schema{Fields: []schema.Field{
		{Name: "database", Label: "Database Name", Kind: schema.KindText, Default: "neo4j", Description: "Database name (default: neo4j)"},
		{Name: "index_name", Label: "Vector Index Name", Kind: schema.KindText, Required: true, Placeholder: "document_embeddings", Description: "Name of the vector index"},
		{Name: "node_label", Label: "Node Label", Kind: schema.KindText, Default: "Document", Description: "Label for nodes containing embeddings"},
		{Name: "embedding_property", Label: "Embedding Property", Kind: schema.KindText, Default: "embedding", Description: "Property name for storing embeddings"},
		{Name: "text_property", Label: "Text Property", Kind: schema.KindText, Default: "text", Description: "Property name for storing source text"},
		{Name: "dimension", Label: "Vector Dimension", Kind: schema.KindNumber, Required: true, Default: 1536, Min: schema.Bound(1), Max: schema.Bound(4096), Description: "Dimension of the embedding vectors"},
		{Name: "similarity_function", Label: "Similarity Function", Kind: schema.KindSelect, Default: "cosine", Options: choices("cosine", "Cosine Similarity", "euclidean", "Euclidean Distance"), Description: "Similarity function for vector search"},
		{Name: "enable_graph_rag", Label: "Enable Graph RAG", Kind: schema.KindCheckbox, Default: true, Description: "Enable graph-based retrieval augmented generation"},
		{Name: "relationship_types", Label: "Relationship Types", Kind: schema.KindText, Placeholder: "RELATED_TO,REFERENCES,CONTAINS", Description: "Comma-separated relationship types for Graph RAG traversal", ShowIf: graphRAG},
		{Name: "max_depth", Label: "Max Traversal Depth", Kind: schema.KindNumber, Default: 2, Min: schema.Bound(1), Max: schema.Bound(5), Description: "Maximum depth for graph traversal in RAG", ShowIf: graphRAG},
	}}}
}

func (h *Neo4j) TestConnection(context.Context, map[string]any) vs.ConnectionResult {
	return succeeded(simulatedSuccess)
}
