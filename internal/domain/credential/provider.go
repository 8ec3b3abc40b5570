package credential

// ProviderType identifies a credential provider.
type ProviderType string

const (
	ProviderAWS           ProviderType = "aws"
	ProviderAzure         ProviderType = "azure"
	ProviderGCP           ProviderType = "gcp"
	ProviderOpenAI        ProviderType = "openai"
	ProviderNeo4j         ProviderType = "neo4j"
	ProviderElasticsearch ProviderType = "elasticsearch"
	ProviderRedis         ProviderType = "redis"
	ProviderPgVector      ProviderType = "pgvector"
	ProviderMongoDB       ProviderType = "mongodb"
	ProviderPinecone      ProviderType = "pinecone"
	ProviderCustom        ProviderType = "custom"

	// ProviderUnknown is returned by ParseProviderType for unrecognized input.
	ProviderUnknown ProviderType = ""
)

// Status is the rollout state of a provider.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusBeta       Status = "beta"
	StatusComingSoon Status = "coming_soon"
)

// AuthType describes one authentication mode of a provider.
type AuthType struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Provider is the static display metadata of a credential provider.
type Provider struct {
	Type        ProviderType `json:"provider_type"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Status      Status       `json:"status"`
	Description string       `json:"description"`
	AuthTypes   []AuthType   `json:"auth_types"`
}

func envVar(desc string) AuthType {
	return AuthType{Value: "env_var", Label: "Environment Variables", Description: desc}
}

// providers is ordered for display; lookups go through providerIndex.
var providers = []Provider{
	{
		Type: ProviderAWS, Name: "Amazon Web Services (AWS)", Icon: "aws", Status: StatusAvailable,
		Description: "AWS credentials for OpenSearch, Aurora, S3, and other AWS services",
		AuthTypes: []AuthType{
			{Value: "basic", Label: "Access Key & Secret", Description: "Use AWS Access Key ID and Secret Access Key"},
			{Value: "iam_role", Label: "IAM Role", Description: "Assume an IAM Role (for EC2, Lambda, ECS)"},
			{Value: "profile", Label: "AWS Profile", Description: "Use named profile from ~/.aws/credentials (local dev)"},
			envVar("Use AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY env vars"),
		},
	},
	{
		Type: ProviderAzure, Name: "Microsoft Azure", Icon: "azure", Status: StatusAvailable,
		Description: "Azure credentials for AI Search, Cosmos DB, and other Azure services",
		AuthTypes: []AuthType{
			{Value: "service_principal", Label: "Service Principal", Description: "Client ID, Secret, and Tenant ID"},
			{Value: "managed_identity", Label: "Managed Identity", Description: "Azure Managed Identity (for Azure VMs, Functions)"},
			{Value: "connection_string", Label: "Connection String", Description: "Service-specific connection string"},
			envVar("Use AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID env vars"),
		},
	},
	{
		Type: ProviderGCP, Name: "Google Cloud Platform", Icon: "gcp", Status: StatusAvailable,
		Description: "GCP credentials for Vertex AI, Cloud SQL, and other GCP services",
		AuthTypes: []AuthType{
			{Value: "service_account", Label: "Service Account Key", Description: "Upload service account JSON key file"},
			{Value: "application_default", Label: "Application Default", Description: "Use Application Default Credentials (local dev)"},
			{Value: "env_var", Label: "Environment Variable", Description: "Use GOOGLE_APPLICATION_CREDENTIALS env var"},
		},
	},
	{
		Type: ProviderOpenAI, Name: "OpenAI", Icon: "openai", Status: StatusAvailable,
		Description: "OpenAI API credentials for Vector Stores and Assistants",
		AuthTypes: []AuthType{
			{Value: "api_key", Label: "API Key", Description: "OpenAI API Key"},
			{Value: "env_var", Label: "Environment Variable", Description: "Use environment variable for API key"},
		},
	},
	{
		Type: ProviderNeo4j, Name: "Neo4j", Icon: "neo4j", Status: StatusAvailable,
		Description: "Neo4j database credentials for graph vector store",
		AuthTypes: []AuthType{
			{Value: "basic", Label: "Username & Password", Description: "Neo4j username and password authentication"},
			envVar("Use NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD env vars"),
		},
	},
	{
		Type: ProviderElasticsearch, Name: "Elasticsearch", Icon: "elasticsearch", Status: StatusAvailable,
		Description: "Elasticsearch/OpenSearch credentials",
		AuthTypes: []AuthType{
			{Value: "basic", Label: "Username & Password", Description: "Basic authentication"},
			{Value: "api_key", Label: "API Key", Description: "Elasticsearch API Key"},
			envVar("Use ELASTICSEARCH_URL, ELASTICSEARCH_API_KEY env vars"),
		},
	},
	{
		Type: ProviderRedis, Name: "Redis", Icon: "redis", Status: StatusAvailable,
		Description: "Redis credentials for in-memory vector store",
		AuthTypes: []AuthType{
			{Value: "password", Label: "Password", Description: "Redis password authentication"},
			{Value: "acl", Label: "ACL User", Description: "Redis ACL username and password"},
			envVar("Use REDIS_URL or REDIS_HOST, REDIS_PASSWORD env vars"),
		},
	},
	{
		Type: ProviderPgVector, Name: "PostgreSQL (pgvector)", Icon: "postgresql", Status: StatusAvailable,
		Description: "PostgreSQL database credentials for pgvector extension",
		AuthTypes: []AuthType{
			{Value: "basic", Label: "Username & Password", Description: "PostgreSQL username and password"},
			envVar("Use DATABASE_URL or PG_HOST, PG_USER, PG_PASSWORD env vars"),
		},
	},
	{
		Type: ProviderMongoDB, Name: "MongoDB", Icon: "mongodb", Status: StatusAvailable,
		Description: "MongoDB Atlas credentials for vector search",
		AuthTypes: []AuthType{
			{Value: "connection_string", Label: "Connection String", Description: "MongoDB connection string with credentials"},
			{Value: "basic", Label: "Username & Password", Description: "MongoDB username and password"},
			envVar("Use MONGODB_URI env var"),
		},
	},
	{
		Type: ProviderPinecone, Name: "Pinecone", Icon: "pinecone", Status: StatusAvailable,
		Description: "Pinecone API credentials",
		AuthTypes: []AuthType{
			{Value: "api_key", Label: "API Key", Description: "Pinecone API Key"},
			envVar("Use PINECONE_API_KEY, PINECONE_ENVIRONMENT env vars"),
		},
	},
	{
		Type: ProviderCustom, Name: "Custom", Icon: "custom", Status: StatusComingSoon,
		Description: "Custom credential configuration",
		AuthTypes:   []AuthType{},
	},
}

var providerIndex = func() map[ProviderType]*Provider {
	m := make(map[ProviderType]*Provider, len(providers))
	for i := range providers {
		m[providers[i].Type] = &providers[i]
	}
	return m
}()

// ParseProviderType maps s to a known provider or ProviderUnknown. It never fails.
func ParseProviderType(s string) ProviderType {
	if _, ok := providerIndex[ProviderType(s)]; ok {
		return ProviderType(s)
	}
	return ProviderUnknown
}

// Providers returns every credential provider in display order.
// The returned slice is a copy.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	for i, p := range providers {
		p.AuthTypes = append([]AuthType{}, p.AuthTypes...)
		out[i] = p
	}
	return out
}

// Lookup returns the provider descriptor for s.
func Lookup(s string) (Provider, bool) {
	p, ok := providerIndex[ProviderType(s)]
	if !ok {
		return Provider{}, false
	}
	return *p, true
}

// AuthTypes lists the auth modes of provider s; empty for unknown providers.
func AuthTypes(s string) []AuthType {
	p, ok := providerIndex[ProviderType(s)]
	if !ok {
		return []AuthType{}
	}
	out := make([]AuthType, len(p.AuthTypes))
	copy(out, p.AuthTypes)
	return out
}

// HasAuthType reports whether auth is one of provider s's auth modes.
func HasAuthType(s, auth string) bool {
	p, ok := providerIndex[ProviderType(s)]
	if !ok {
		return false
	}
	for _, a := range p.AuthTypes {
		if a.Value == auth {
			return true
		}
	}
	return false
}

// IsAvailable reports whether provider s may be used to create credentials.
// Only StatusAvailable counts; Beta and ComingSoon do not.
func IsAvailable(s string) bool {
	p, ok := providerIndex[ProviderType(s)]
	return ok && p.Status == StatusAvailable
}

// DisplayName returns the provider's name, or s itself for unknown providers.
func DisplayName(s string) string {
	if p, ok := providerIndex[ProviderType(s)]; ok {
		return p.Name
	}
	return s
}

// Icon returns the provider's icon key, or "default" for unknown providers.
func Icon(s string) string {
	if p, ok := providerIndex[ProviderType(s)]; ok {
		return p.Icon
	}
	return "default"
}
