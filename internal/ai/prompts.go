package ai

import (
	"fmt"
	"strings"
)

// BuildQuizPrompt constructs the prompt that turns one news summary into
// multiple-choice questions.
func BuildQuizPrompt(summary string, count int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Generate exactly %d multiple-choice questions based on the following news summary. "+
			"The questions are for competitive exam preparation, so focus on concrete facts: "+
			"names, institutions, figures, places, and policy details.\n\n", count))

	sb.WriteString("News summary:\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n")

	sb.WriteString(`Each question must have exactly 4 options and one correct answer.

IMPORTANT: Return ONLY a valid JSON array with no additional text, markdown, or explanation.

Format:
[
  {"question": "Question text here?", "options": ["A", "B", "C", "D"], "correct_answer": 0}
]

"correct_answer" is the zero-based index of the correct option (0-3).`)

	return sb.String()
}

// BuildWeeklyOverviewPrompt constructs the prompt for the editorial
// overview that opens a weekly digest.
func BuildWeeklyOverviewPrompt(combined string) string {
	var sb strings.Builder

	sb.WriteString("You are an editor writing the opening overview of a weekly current-affairs digest. ")
	sb.WriteString("Summarize the week's most important developments from the stories below in 2-3 paragraphs of plain prose. ")
	sb.WriteString("Group related stories, name the key actors and decisions, and keep a neutral, factual tone.\n\n")

	sb.WriteString("This week's stories:\n")
	sb.WriteString(combined)
	sb.WriteString("\n\nReturn ONLY the overview text with no headers, lists, or markdown.")

	return sb.String()
}

// CleanJSONResponse strips markdown code fences from JSON responses.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	return strings.TrimSpace(response)
}

// ExtractJSON attempts to extract valid JSON from a potentially messy AI response.
// It tries direct parsing first, then strips markdown fences, then finds JSON delimiters.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	// Try as-is first
	if looksLikeJSON(raw) {
		return raw
	}

	// Strip markdown code fences
	cleaned := CleanJSONResponse(raw)
	if looksLikeJSON(cleaned) {
		return cleaned
	}

	// Find first [ and last ] for arrays
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			candidate := raw[start : end+1]
			if looksLikeJSON(candidate) {
				return candidate
			}
		}
	}

	// Find first { and last } for objects
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			candidate := raw[start : end+1]
			if looksLikeJSON(candidate) {
				return candidate
			}
		}
	}

	// Return cleaned version as best effort
	return cleaned
}

// ExtractJSONArray pulls the first bracket-delimited array out of a response.
// JSON-mode providers tend to wrap a requested array in an object like
// {"questions": [...]}; when the caller wants the array itself, the bracketed
// substring is the part to parse.
func ExtractJSONArray(raw string) string {
	raw = CleanJSONResponse(raw)
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			return raw[start : end+1]
		}
	}
	return ""
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}
