package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"competitor_scout/internal/adapters/observability"
)

const defaultModel = "gemini-2.5-flash"

// ErrEmptyResponse marks a successful call that produced no text. Kept
// distinct from parse failures so retry logs can tell them apart; both take
// the same retry path upstream.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Client calls the generateContent endpoint of the Gemini API and parses
// the aspect -> sentiment object out of the reply. One outbound call per
// AnalyzeReview; the retry budget belongs to the caller.
type Client struct {
	base  string
	model string
	key   string
	hc    *http.Client
}

func New(base, key, model string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		key:   key,
		hc:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

const promptTemplate = `You are a review analysis assistant.
Extract key aspects mentioned in the review below and classify the sentiment
(positive, negative, neutral) for each aspect.
Return a valid JSON object only, where keys are aspects and values are sentiments.

Review: %q`

func (c *Client) AnalyzeReview(ctx context.Context, text string) (map[string]string, error) {
	raw, err := c.generate(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}
	return parseAspects(raw)
}

// parseAspects defensively parses the model's reply. Replies often arrive
// wrapped in markdown code fences.
func parseAspects(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var aspects map[string]string
	if err := json.Unmarshal([]byte(raw), &aspects); err != nil {
		return nil, fmt.Errorf("gemini: parse aspects: %w (response: %.200s)", err, raw)
	}
	return aspects, nil
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
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.base, c.model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("gemini", "generateContent", 0, time.Since(start))
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gemini", "generateContent", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini: bad status %d: %.200s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini: error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
