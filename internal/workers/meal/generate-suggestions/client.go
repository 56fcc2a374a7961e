// internal/workers/meal/generate-suggestions/client.go
package generatesuggestions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"
)

// GenerativeClient produces free-form text for a prompt.
type GenerativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient talks to the Generative Language REST API. The configured
// model list is tried in order of preference; once a model answers, it is
// pinned for subsequent calls until it starts returning 404 again.
type GeminiClient struct {
	config *Config
	client *http.Client
	logger logger.Logger

	mu         sync.Mutex
	modelIndex int
}

func NewGeminiClient(config *Config, log logger.Logger) *GeminiClient {
	return &GeminiClient{
		config: config,
		client: &http.Client{},
		logger: log.With(map[string]interface{}{
			"component": "gemini-client",
		}),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	start := c.modelIndex
	c.mu.Unlock()

	for i := start; i < len(c.config.Models); i++ {
		model := c.config.Models[i]
		text, err := c.generateWithModel(ctx, model, prompt)
		if err == nil {
			c.mu.Lock()
			c.modelIndex = i
			c.mu.Unlock()
			return text, nil
		}

		if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeModelUnavailable {
			c.logger.Warn("model unavailable, trying next", map[string]interface{}{
				"model": model,
			})
			continue
		}
		return "", err
	}

	return "", errors.NewModelUnavailableError(c.config.Models[len(c.config.Models)-1])
}

func (c *GeminiClient) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, model, c.config.APIKey)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewGenerationFailedError(ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
		if err != nil {
			return "", errors.NewGenerationFailedError(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			if resp.StatusCode == http.StatusNotFound {
				resp.Body.Close()
				return "", errors.NewModelUnavailableError(model)
			}
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, payload)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", errors.NewGenerationFailedError(ctx.Err())
		}
	}

	if lastErr != nil {
		return "", errors.NewGenerationFailedError(lastErr)
	}
	defer resp.Body.Close()

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", errors.NewMalformedResponseError("gemini", err)
	}

	if len(apiResponse.Candidates) == 0 || len(apiResponse.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewMalformedResponseError("gemini", fmt.Errorf("no candidates in response"))
	}

	return apiResponse.Candidates[0].Content.Parts[0].Text, nil
}
