package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/logging"
)

// RegistryClient searches a company registry's autocomplete endpoint.
// An exact identifier match yields a 0.95 confidence ceiling, any other
// returned candidate a 0.75 fuzzy match.
type RegistryClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Entry
}

func NewRegistryClient(baseURL, apiKey string) *RegistryClient {
	return &RegistryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     logging.New("registry-lookup"),
	}
}

type registryResponse struct {
	Entities []struct {
		Identifier struct {
			UUID      string `json:"uuid"`
			Value     string `json:"value"`
			Permalink string `json:"permalink"`
		} `json:"identifier"`
		ShortDescription string `json:"short_description"`
	} `json:"entities"`
}

func (c *RegistryClient) SearchCompany(ctx context.Context, name string) (Result, error) {
	if c.apiKey == "" {
		c.log.Warn("registry API key not configured, skipping validation")
		return Result{Validated: false, Reason: ReasonNoAPIKey}, nil
	}

	params := url.Values{}
	params.Set("query", name)
	params.Set("user_key", c.apiKey)
	params.Set("limit", "5")

	endpoint := fmt.Sprintf("%s/autocompletes?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("failed to decode registry response: %w", err)
	}

	for _, ent := range body.Entities {
		if strings.EqualFold(ent.Identifier.Value, name) {
			return Result{
				Validated:  true,
				Confidence: 0.95,
				Metadata: map[string]interface{}{
					"registry_uuid":     ent.Identifier.UUID,
					"permalink":         ent.Identifier.Permalink,
					"short_description": ent.ShortDescription,
				},
			}, nil
		}
	}

	if len(body.Entities) > 0 {
		return Result{
			Validated:  true,
			Confidence: 0.75,
			Metadata:   map[string]interface{}{"partial_match": true},
		}, nil
	}

	return Result{Validated: false, Reason: ReasonNotFound}, nil
}
