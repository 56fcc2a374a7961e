// internal/workers/search/archive-suggestion/handler.go
package archivesuggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const (
	TaskType = "archive-suggestion"
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute stores every enriched suggestion in the archive index, one document
// per dish. Archiving is best-effort from the caller's point of view: the
// generation response is already on its way when this runs.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	archived := 0
	for mealType, plan := range input.Plans {
		for _, suggestion := range plan.Suggestions {
			doc := ArchivedSuggestion{
				UserID:      input.UserID,
				MealType:    mealType,
				Suggestion:  suggestion,
				GeneratedAt: plan.GeneratedAt,
			}
			if err := h.indexDocument(ctx, doc); err != nil {
				return &Output{Archived: archived}, err
			}
			archived++
		}
	}

	h.logger.Info("suggestions archived", map[string]interface{}{
		"userId":   input.UserID,
		"archived": archived,
	})

	return &Output{Archived: archived}, nil
}

func (h *Handler) indexDocument(ctx context.Context, doc ArchivedSuggestion) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewArchiveFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      h.config.Index,
		DocumentID: uuid.New().String(),
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, h.client)
	if err != nil {
		return errors.NewArchiveFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewArchiveFailedError(fmt.Errorf("index responded %s", res.Status()))
	}
	return nil
}

// Search returns a user's archived suggestions, newest first.
func (h *Handler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	size := input.Size
	if size <= 0 {
		size = 20
	}

	filterClauses := []interface{}{
		map[string]interface{}{
			"term": map[string]interface{}{"user_id": input.UserID},
		},
	}
	if input.MealType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"meal_type": input.MealType},
		})
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"generated_at": map[string]interface{}{"order": "desc"}},
		},
	}

	body, _ := json.Marshal(queryBody)
	res, err := h.client.Search(
		h.client.Search.WithContext(ctx),
		h.client.Search.WithIndex(h.config.Index),
		h.client.Search.WithBody(strings.NewReader(string(body))),
		h.client.Search.WithSize(size),
	)
	if err != nil {
		return nil, errors.NewArchiveFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewArchiveFailedError(fmt.Errorf("search responded %s", res.Status()))
	}

	var searchResponse struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ArchivedSuggestion `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResponse); err != nil {
		return nil, errors.NewArchiveFailedError(err)
	}

	suggestions := make([]ArchivedSuggestion, len(searchResponse.Hits.Hits))
	for i, hit := range searchResponse.Hits.Hits {
		suggestions[i] = hit.Source
	}

	return &SearchOutput{
		Suggestions: suggestions,
		TotalHits:   searchResponse.Hits.Total.Value,
	}, nil
}
