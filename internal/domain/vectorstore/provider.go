// Package vectorstore defines the vector-store provider registry and the
// value types produced by configuration handlers.
package vectorstore

// ProviderType identifies a vector-store backend.
type ProviderType string

const (
	AWSOpenSearch     ProviderType = "aws_opensearch"
	AWSAuroraPgVector ProviderType = "aws_aurora_pgvector"
	AWSS3Vectors      ProviderType = "aws_s3_vectors"
	AWSMemoryDB       ProviderType = "aws_memorydb"
	AWSNeptune        ProviderType = "aws_neptune"
	AWSDocumentDB     ProviderType = "aws_documentdb"
	MongoDBAtlas      ProviderType = "mongodb_atlas"
	Neo4j             ProviderType = "neo4j"
	Milvus            ProviderType = "milvus"
	Chroma            ProviderType = "chroma"
	Qdrant            ProviderType = "qdrant"
	Weaviate          ProviderType = "weaviate"
	FAISS             ProviderType = "faiss"
	PgVector          ProviderType = "pgvector"
	Redis             ProviderType = "redis"
	Vespa             ProviderType = "vespa"
	Pinecone          ProviderType = "pinecone"
	Elasticsearch     ProviderType = "elasticsearch"
	AzureAISearch     ProviderType = "azure_ai_search"
	AzureCosmosDB     ProviderType = "azure_cosmos_db"
	GCPVertexAI       ProviderType = "gcp_vertex_ai"
	GCPAlloyDB        ProviderType = "gcp_alloydb"
	OpenAI            ProviderType = "openai"

	// Unknown is returned by ParseProviderType for unrecognized input.
	Unknown ProviderType = ""
)

// Status is the rollout state of a provider.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusBeta       Status = "beta"
	StatusComingSoon Status = "coming_soon"
)

// DefaultCategory groups providers that declare no category.
const DefaultCategory = "Other"

// Provider is the static display metadata of a vector-store provider.
type Provider struct {
	Type        ProviderType `json:"provider_type"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Status      Status       `json:"status"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
}

var providers = []Provider{
	{AWSOpenSearch, "Amazon OpenSearch Service", "AWS Native", StatusAvailable, "Scalable, high-performance vector search with built-in k-NN capabilities", "aws"},
	{AWSAuroraPgVector, "Amazon Aurora PostgreSQL (pgvector)", "AWS Native", StatusAvailable, "PostgreSQL with pgvector extension for vector similarity search", "aws"},
	{AWSS3Vectors, "Amazon S3 Vectors", "AWS Native", StatusComingSoon, "Cost-optimized vector storage for large datasets", "aws"},
	{AWSMemoryDB, "Amazon MemoryDB (Redis)", "AWS Native", StatusComingSoon, "In-memory, low-latency vector search", "aws"},
	{AWSNeptune, "Amazon Neptune Analytics", "AWS Native", StatusComingSoon, "Graph-based data with vector search", "aws"},
	{AWSDocumentDB, "Amazon DocumentDB", "AWS Native", StatusComingSoon, "MongoDB-compatible document database with vector search", "aws"},

	{MongoDBAtlas, "MongoDB Atlas Vector Search", "Managed Cloud", StatusAvailable, "Integrated vector search in MongoDB Atlas", "mongodb"},
	{Neo4j, "Neo4j", "Graph Database", StatusAvailable, "Graph database with native vector support for Graph RAG", "neo4j"},
	{OpenAI, "OpenAI Vector Stores", "Managed Cloud", StatusAvailable, "Hosted file search vector stores for the OpenAI Assistants API", "openai"},

	{Milvus, "Milvus", "Open Source", StatusComingSoon, "Highly scalable open-source vector database", "milvus"},
	{Chroma, "Chroma", "Open Source", StatusComingSoon, "Popular for LLM app development, easy local setup", "chroma"},
	{Qdrant, "Qdrant", "Open Source", StatusComingSoon, "High-performance vector search written in Rust", "qdrant"},
	{Weaviate, "Weaviate", "Open Source", StatusComingSoon, "Cloud-native with semantic search and graph features", "weaviate"},
	{FAISS, "FAISS", "Open Source", StatusComingSoon, "Facebook AI library for efficient similarity search", "faiss"},
	{PgVector, "pgvector (PostgreSQL)", "Database Extension", StatusComingSoon, "Vector search extension for PostgreSQL", "postgresql"},
	{Redis, "Redis", "In-Memory", StatusComingSoon, "In-memory data store with vector capabilities", "redis"},
	{Vespa, "Vespa", "Open Source", StatusComingSoon, "Open-source serving engine for large-scale AI", "vespa"},
	{Pinecone, "Pinecone", "Managed Cloud", StatusComingSoon, "Fully managed, high-performance vector database", "pinecone"},
	{Elasticsearch, "Elasticsearch", "Search Engine", StatusComingSoon, "Hybrid text and vector search capabilities", "elasticsearch"},

	{AzureAISearch, "Azure AI Search", "Azure", StatusComingSoon, "Managed service with built-in vector search", "azure"},
	{AzureCosmosDB, "Azure Cosmos DB", "Azure", StatusComingSoon, "NoSQL with integrated vector database", "azure"},

	{GCPVertexAI, "Vertex AI Vector Search", "Google Cloud", StatusComingSoon, "Highly scalable ANN search service", "gcp"},
	{GCPAlloyDB, "AlloyDB with pgvector", "Google Cloud", StatusComingSoon, "Enhanced PostgreSQL with vector search", "gcp"},
}

var providerIndex = func() map[ProviderType]Provider {
	m := make(map[ProviderType]Provider, len(providers))
	for _, p := range providers {
		m[p.Type] = p
	}
	return m
}()

// ParseProviderType maps s to a known provider or Unknown. It never fails.
func ParseProviderType(s string) ProviderType {
	if _, ok := providerIndex[ProviderType(s)]; ok {
		return ProviderType(s)
	}
	return Unknown
}

// Providers returns a copy of every provider in display order.
func Providers() []Provider {
	return append([]Provider{}, providers...)
}

// Lookup returns the descriptor for s.
func Lookup(s string) (Provider, bool) {
	p, ok := providerIndex[ProviderType(s)]
	return p, ok
}

// StatusOf returns the rollout status of s, ComingSoon when s is unknown.
func StatusOf(s string) Status {
	if p, ok := providerIndex[ProviderType(s)]; ok {
		return p.Status
	}
	return StatusComingSoon
}

// IsAvailable reports whether s can be configured. Beta does not count as available.
func IsAvailable(s string) bool {
	return StatusOf(s) == StatusAvailable
}

// Categories groups providers by category, preserving display order within each group.
func Categories() map[string][]Provider {
	out := make(map[string][]Provider)
	for _, p := range providers {
		cat := p.Category
		if cat == "" {
			cat = DefaultCategory
		}
		out[cat] = append(out[cat], p)
	}
	return out
}
