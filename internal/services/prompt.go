package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

// feedbackInputLimit is the number of characters of each document placed in
// the feedback prompt.
const feedbackInputLimit = 3000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFeedbackPrompt creates the resume-improvement prompt
func (pb *PromptBuilder) BuildFeedbackPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are a career coach and resume expert. Given the following resume and job description, give specific, actionable feedback for improving the resume to match the job description. List missing skills, suggest changes, and highlight what is already a good fit.

Resume:
%s

Job Description:
%s

Feedback:`,
		truncateChars(resumeText, feedbackInputLimit), truncateChars(jdText, feedbackInputLimit))
}

// Snippet is the first n characters of text followed by "...", which is
// appended even when text is shorter than n.
func Snippet(text string, n int) string {
	return truncateChars(text, n) + "..."
}

func truncateChars(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// FormatRanking renders ranked results as plain text for terminals.
func FormatRanking(results []models.RankedResume) string {
	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("%d. %s (score: %.4f)\n   %s",
			i+1, result.Filename, result.Score, strings.ReplaceAll(CleanText(result.Snippet), "\n", " ")))
	}

	return strings.Join(parts, "\n\n")
}
