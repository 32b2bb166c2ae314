package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models/"

// HuggingFaceClient calls the Hugging Face inference API for
// single-document summarization.
type HuggingFaceClient struct {
	httpClient *http.Client
	token      string
	base       string
}

// NewHuggingFaceClient creates a Hugging Face inference client.
func NewHuggingFaceClient(token string) *HuggingFaceClient {
	return &HuggingFaceClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      strings.TrimSpace(token),
		base:       huggingFaceBaseURL,
	}
}

// Summarize runs the given summarization model over text and returns the
// generated summary.
func (h *HuggingFaceClient) Summarize(ctx context.Context, model, text string) (string, error) {
	if h.token == "" {
		return "", fmt.Errorf("hugging face token not configured")
	}

	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.base+model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hugging face request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != 200 {
		errMsg := extractAPIError(respBody)
		if errMsg == "" {
			errMsg = string(respBody)
		}
		return "", fmt.Errorf("hugging face returned status %d: %s", resp.StatusCode, errMsg)
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse summarization response: %w", err)
	}
	if len(result) == 0 || result[0].SummaryText == "" {
		return "", fmt.Errorf("empty summary from model %s", model)
	}

	return strings.TrimSpace(result[0].SummaryText), nil
}
