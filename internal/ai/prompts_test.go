package ai

import (
	"strings"
	"testing"
)

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildQuizPrompt("RBI raised the repo rate by 25 basis points.", 2)

	if !strings.Contains(prompt, "exactly 2 multiple-choice questions") {
		t.Error("prompt missing question count")
	}
	if !strings.Contains(prompt, "RBI raised the repo rate") {
		t.Error("prompt missing the summary text")
	}
	if !strings.Contains(prompt, `"correct_answer"`) {
		t.Error("prompt missing answer format instructions")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean array", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around array", `Sure! Here you go: [{"a":1}] Hope that helps.`, `[{"a":1}]`},
		{"prose around object", `Result: {"a":1}.`, `{"a":1}`},
		{"whitespace", "  [1,2,3]  ", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"object wrapping an array", `{"questions": [1,2,3]}`, `[1,2,3]`},
		{"fenced object wrapping an array", "```json\n{\"questions\": [1,2]}\n```", `[1,2]`},
		{"prose around array", `Here: [1,2] done.`, `[1,2]`},
		{"no array at all", `{"a":1}`, ``},
		{"plain prose", `no questions today`, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONArray(tt.input); got != tt.want {
				t.Errorf("ExtractJSONArray(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
