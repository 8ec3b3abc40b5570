package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

// emptyPayloadHash is the hex SHA-256 of an empty request body.
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

var awsRegions = choices(
	"us-east-1", "US East (N. Virginia)",
	"us-east-2", "US East (Ohio)",
	"us-west-1", "US West (N. California)",
	"us-west-2", "US West (Oregon)",
	"eu-west-1", "Europe (Ireland)",
	"eu-west-2", "Europe (London)",
	"eu-central-1", "Europe (Frankfurt)",
	"ap-south-1", "Asia Pacific (Mumbai)",
	"ap-southeast-1", "Asia Pacific (Singapore)",
	"ap-southeast-2", "Asia Pacific (Sydney)",
	"ap-northeast-1", "Asia Pacific (Tokyo)",
)

// OpenSearch handles Amazon OpenSearch Service configuration.
type OpenSearch struct {
	port.Base
	opts Options
}

// NewOpenSearch creates the Amazon OpenSearch handler.
func NewOpenSearch(opts Options) *OpenSearch {
	return &OpenSearch{Base: port.Base{Type: string(vs.AWSOpenSearch)}, opts: opts}
}

// ValidateConfig requires an https endpoint, an index and a region.
func (h *OpenSearch) ValidateConfig(config map[string]any) error {
	if err := requireFields(config, "endpoint", "index_name", "region"); err != nil {
		return err
	}
	if !strings.HasPrefix(schema.String(config["endpoint"]), "https://") {
		return domain.Validationf("Endpoint must start with https://")
	}
	if len(schema.String(config["region"])) < 5 {
		return domain.Validationf("Invalid AWS region")
	}
	return optionalIntInRange(config, "dimension", 1, 10000, "Dimension must be an integer between 1 and 10000")
}

// ConfigSchema describes the OpenSearch form.
func (h *OpenSearch) ConfigSchema() vs.ConfigSchema {
	return vs.ConfigSchema{Schema: schema.Schema{Fields: []schema.Field{
		{Name: "endpoint", Label: "OpenSearch Endpoint", Kind: schema.KindText, Required: true, Placeholder: "https://your-domain.region.es.amazonaws.com", Description: "The OpenSearch domain endpoint URL"},
		{Name: "index_name", Label: "Index Name", Kind: schema.KindText, Required: true, Placeholder: "my-vector-index", Description: "Name of the vector index"},
		{Name: "region", Label: "AWS Region", Kind: schema.KindSelect, Required: true, Options: awsRegions, Description: "AWS region where OpenSearch is deployed"},
		{Name: "dimension", Label: "Vector Dimension", Kind: schema.KindNumber, Default: 1536, Min: schema.Bound(1), Max: schema.Bound(10000), Description: "Dimension of the embedding vectors (e.g., 1536 for OpenAI ada-002)"},
		{Name: "auth_type", Label: "Authentication Type", Kind: schema.KindSelect, Required: true, Default: "iam", Options: choices("iam", "IAM Role", "basic", "Basic Auth"), Description: "Authentication method for OpenSearch"},
		{Name: "access_key_id", Label: "AWS Access Key ID", Kind: schema.KindPassword, Description: "AWS Access Key (leave empty to use IAM role)", ShowIf: map[string]any{"auth_type": "basic"}},
		{Name: "secret_access_key", Label: "AWS Secret Access Key", Kind: schema.KindPassword, Description: "AWS Secret Key (leave empty to use IAM role)", ShowIf: map[string]any{"auth_type": "basic"}},
		{Name: "similarity_metric", Label: "Similarity Metric", Kind: schema.KindSelect, Default: "cosine", Options: choices("cosine", "Cosine Similarity", "l2", "Euclidean Distance (L2)", "dot_product", "Dot Product"), Description: "Distance metric for vector similarity"},
	}}}
}

// TestConnection calls GET /_cluster/health signed with SigV4.
func (h *OpenSearch) TestConnection(ctx context.Context, config map[string]any) vs.ConnectionResult {
	if !h.opts.Probe {
		return succeeded(simulatedSuccess)
	}

	ctx, cancel := context.WithTimeout(ctx, h.opts.timeout())
	defer cancel()

	region := schema.String(config["region"])
	creds, err := h.credentials(ctx, config, region)
	if err != nil {
		return failed(fmt.Sprintf("Failed to resolve AWS credentials: %v", err))
	}

	url := strings.TrimRight(schema.String(config["endpoint"]), "/") + "/_cluster/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return failed(fmt.Sprintf("Invalid endpoint: %v", err))
	}
	if err := v4.NewSigner().SignHTTP(ctx, creds, req, emptyPayloadHash, "es", region, time.Now()); err != nil {
		return failed(fmt.Sprintf("Failed to sign request: %v", err))
	}

	resp, err := h.opts.httpClient().Do(req)
	if err != nil {
		return failed(fmt.Sprintf("Connection failed: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK {
		return failed(fmt.Sprintf("OpenSearch returned HTTP %d", resp.StatusCode))
	}

	var health struct {
		ClusterName string `json:"cluster_name"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return failed("Unexpected response from OpenSearch cluster health endpoint")
	}
	return succeeded(fmt.Sprintf("Connected to OpenSearch cluster %q (status: %s)", health.ClusterName, health.Status))
}

func (h *OpenSearch) credentials(ctx context.Context, config map[string]any, region string) (aws.Credentials, error) {
	var provider aws.CredentialsProvider
	ak, sk := schema.String(config["access_key_id"]), schema.String(config["secret_access_key"])
	if schema.String(config["auth_type"]) == "basic" && ak != "" && sk != "" {
		provider = credentials.NewStaticCredentialsProvider(ak, sk, "")
	} else {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			return aws.Credentials{}, err
		}
		provider = cfg.Credentials
	}
	return provider.Retrieve(ctx)
}
