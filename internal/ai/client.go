// Package ai wraps the Hugging Face summarization API and Groq chat
// completions behind one client.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samachar-app/samachar/internal/models"
)

// MaxSummaryInput caps how many characters of article text are sent to
// the summarization model.
const MaxSummaryInput = 1000

// maxOverviewInput caps the combined story text sent to the weekly
// overview model.
const maxOverviewInput = 4096

// Client is the main AI entry point. It routes summarization to Hugging
// Face and question or overview generation to a chat provider.
type Client struct {
	hf           *HuggingFaceClient
	chat         Provider
	summaryModel string
	quizModel    string
	digestModel  string
}

// NewClient creates an AI client over the given backends.
func NewClient(hf *HuggingFaceClient, chat Provider, summaryModel, quizModel, digestModel string) *Client {
	return &Client{
		hf:           hf,
		chat:         chat,
		summaryModel: summaryModel,
		quizModel:    quizModel,
		digestModel:  digestModel,
	}
}

// Summarize condenses article text into a short summary. Input beyond
// MaxSummaryInput characters is dropped before the request.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text to summarize")
	}
	if len(text) > MaxSummaryInput {
		text = text[:MaxSummaryInput]
	}
	return c.hf.Summarize(ctx, c.summaryModel, text)
}

// GenerateQuestions turns one news summary into count multiple-choice
// questions. A malformed question anywhere in the response rejects the
// whole batch.
func (c *Client) GenerateQuestions(ctx context.Context, summary string, count int) ([]models.QuizQuestion, error) {
	prompt := BuildQuizPrompt(summary, count)

	resp, err := c.chat.Chat(ctx, ChatRequest{
		Model:       c.quizModel,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1024,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(resp.Content), &questions); err != nil {
		// JSON mode often wraps the array in an object; recover the
		// bracketed array before falling back to the generic parse.
		recovered := ExtractJSONArray(resp.Content)
		if recovered == "" {
			recovered = ExtractJSON(resp.Content)
		}
		if recovered == "" {
			return nil, fmt.Errorf("empty response from %s", c.chat.Name())
		}
		if err := json.Unmarshal([]byte(recovered), &questions); err != nil {
			return nil, fmt.Errorf("parse questions JSON from %s: %w (response: %s)", c.chat.Name(), err, recovered)
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions in response from %s", c.chat.Name())
	}
	for i, q := range questions {
		if !q.Valid() {
			return nil, fmt.Errorf("question %d is malformed (options=%d, correct_answer=%d)",
				i+1, len(q.Options), q.CorrectAnswer)
		}
	}

	return questions, nil
}

// SummarizeWeek writes the editorial overview for a weekly digest from
// the combined story text.
func (c *Client) SummarizeWeek(ctx context.Context, combined string) (string, error) {
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return "", fmt.Errorf("no stories to summarize")
	}
	if len(combined) > maxOverviewInput {
		combined = combined[:maxOverviewInput]
	}

	resp, err := c.chat.Chat(ctx, ChatRequest{
		Model:       c.digestModel,
		Messages:    []Message{{Role: "user", Content: BuildWeeklyOverviewPrompt(combined)}},
		Temperature: 0.5,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", err
	}

	overview := strings.TrimSpace(resp.Content)
	if overview == "" {
		return "", fmt.Errorf("empty overview from %s", c.chat.Name())
	}
	return overview, nil
}
