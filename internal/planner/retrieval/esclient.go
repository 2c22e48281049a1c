// internal/planner/retrieval/esclient.go
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/models"
)

// SearchClient executes a search body against the exercise index and decodes
// the hits.
type SearchClient interface {
	Search(ctx context.Context, body map[string]interface{}, size int) ([]models.Exercise, error)
}

// ESClient is the production SearchClient backed by go-elasticsearch.
type ESClient struct {
	client *elasticsearch.Client
	index  string
}

func NewESClient(client *elasticsearch.Client, index string) *ESClient {
	return &ESClient{client: client, index: index}
}

func (c *ESClient) Search(ctx context.Context, body map[string]interface{}, size int) ([]models.Exercise, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(c.index, err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  strings.NewReader(string(raw)),
		Size:  &size,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewSearchTimeoutError(c.index)
		}
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewIndexNotFoundError(c.index)
		}
		return nil, apperrors.NewSearchQueryFailedError(c.index, fmt.Errorf("status %s", res.Status()))
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Exercise `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(c.index, err)
	}

	exercises := make([]models.Exercise, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		exercises = append(exercises, hit.Source)
	}

	return exercises, nil
}
