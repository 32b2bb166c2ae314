package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	content string
	err     error
	lastReq ChatRequest
}

func (f *fakeProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &ChatResponse{Content: f.content, Model: req.Model, Provider: "fake"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

const validQuizJSON = `[
	{"question": "Which body passed the bill?", "options": ["Lok Sabha", "Rajya Sabha", "Supreme Court", "NITI Aayog"], "correct_answer": 0},
	{"question": "What does the bill regulate?", "options": ["Trade", "Data protection", "Elections", "Mining"], "correct_answer": 1}
]`

func TestGenerateQuestions(t *testing.T) {
	p := &fakeProvider{content: validQuizJSON}
	c := NewClient(nil, p, "", "quiz-model", "digest-model")

	questions, err := c.GenerateQuestions(context.Background(), "Parliament passed a data protection bill.", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[1].CorrectAnswer != 1 {
		t.Errorf("correct_answer = %d, want 1", questions[1].CorrectAnswer)
	}
	if p.lastReq.Model != "quiz-model" {
		t.Errorf("model = %q, want quiz-model", p.lastReq.Model)
	}
}

func TestGenerateQuestionsRecoversFromFencedJSON(t *testing.T) {
	p := &fakeProvider{content: "Here are the questions:\n```json\n" + validQuizJSON + "\n```"}
	c := NewClient(nil, p, "", "quiz-model", "digest-model")

	questions, err := c.GenerateQuestions(context.Background(), "summary", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerateQuestionsRecoversFromObjectWrappedArray(t *testing.T) {
	// JSON mode steers models toward a top-level object; the question
	// array inside it must still be recovered.
	p := &fakeProvider{content: `{"questions": ` + validQuizJSON + `}`}
	c := NewClient(nil, p, "", "quiz-model", "digest-model")

	questions, err := c.GenerateQuestions(context.Background(), "summary", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].CorrectAnswer != 0 || questions[1].CorrectAnswer != 1 {
		t.Errorf("answers = %d, %d", questions[0].CorrectAnswer, questions[1].CorrectAnswer)
	}
}

func TestGenerateQuestionsRejectsMalformedBatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"three options",
			`[{"question": "Q?", "options": ["A", "B", "C"], "correct_answer": 0}]`,
		},
		{
			"answer out of range",
			`[{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": 4}]`,
		},
		{
			"one bad question poisons the batch",
			`[{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": 0},
			  {"question": "", "options": ["A", "B", "C", "D"], "correct_answer": 1}]`,
		},
		{"empty array", `[]`},
		{"not json", `I could not generate questions.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(nil, &fakeProvider{content: tt.content}, "", "m", "m")
			if _, err := c.GenerateQuestions(context.Background(), "summary", 2); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGenerateQuestionsPropagatesProviderError(t *testing.T) {
	c := NewClient(nil, &fakeProvider{err: errors.New("rate limited")}, "", "m", "m")
	if _, err := c.GenerateQuestions(context.Background(), "summary", 2); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestSummarizeWeekCapsInput(t *testing.T) {
	p := &fakeProvider{content: "A busy week in Parliament."}
	c := NewClient(nil, p, "", "quiz-model", "digest-model")

	long := strings.Repeat("story text ", 2000)
	overview, err := c.SummarizeWeek(context.Background(), long)
	if err != nil {
		t.Fatalf("SummarizeWeek: %v", err)
	}
	if overview != "A busy week in Parliament." {
		t.Errorf("overview = %q", overview)
	}
	if p.lastReq.Model != "digest-model" {
		t.Errorf("model = %q, want digest-model", p.lastReq.Model)
	}
	prompt := p.lastReq.Messages[0].Content
	if len(prompt) > maxOverviewInput+500 {
		t.Errorf("prompt not capped: %d chars", len(prompt))
	}
}

func TestSummarizeWeekRejectsEmptyInput(t *testing.T) {
	c := NewClient(nil, &fakeProvider{content: "x"}, "", "m", "m")
	if _, err := c.SummarizeWeek(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty input")
	}
}
