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

// KnowledgeClient searches a Wikidata-style entity search endpoint for
// people, locations and events. An exact label match yields a 0.92
// confidence ceiling; a type or description fuzzy match yields 0.80.
type KnowledgeClient struct {
	endpoint string
	http     *http.Client
	log      *logrus.Entry
}

func NewKnowledgeClient(endpoint string) *KnowledgeClient {
	return &KnowledgeClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 5 * time.Second},
		log:      logging.New("knowledge-lookup"),
	}
}

type knowledgeResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

func (c *KnowledgeClient) SearchEntity(ctx context.Context, name, typeHint string) (Result, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("format", "json")
	params.Set("language", "en")
	params.Set("search", name)
	params.Set("limit", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("knowledge graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("knowledge graph returned status %d", resp.StatusCode)
	}

	var body knowledgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("failed to decode knowledge graph response: %w", err)
	}

	lowerName := strings.ToLower(name)
	for _, hit := range body.Search {
		label := strings.ToLower(hit.Label)
		description := strings.ToLower(hit.Description)

		if label == lowerName {
			return Result{
				Validated:  true,
				Confidence: 0.92,
				Metadata: map[string]interface{}{
					"kb_id":       hit.ID,
					"description": hit.Description,
				},
			}, nil
		}

		if strings.Contains(description, typeHint) || (label != "" && strings.Contains(lowerName, label)) {
			return Result{
				Validated:  true,
				Confidence: 0.80,
				Metadata:   map[string]interface{}{"fuzzy_match": true},
			}, nil
		}
	}

	return Result{Validated: false, Reason: ReasonNotFound}, nil
}
