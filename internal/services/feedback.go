package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

// FallbackFeedback is returned when the backend answers with no text.
const FallbackFeedback = "Could not generate feedback. Try again or check Ollama server."

type FeedbackService interface {
	// GenerateFeedback always returns feedback text; backend failures are
	// rendered as "LLM Error: <details>".
	GenerateFeedback(ctx context.Context, resumeText, jdText string) string
}

type feedbackService struct {
	generator     TextGenerator
	feedbackRepo  repositories.FeedbackRepository
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewFeedbackService(
	generator TextGenerator,
	feedbackRepo repositories.FeedbackRepository,
	timeout time.Duration,
) FeedbackService {
	return &feedbackService{
		generator:     generator,
		feedbackRepo:  feedbackRepo,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// GenerateFeedback implements FeedbackService. Single attempt, no retry.
func (f *feedbackService) GenerateFeedback(ctx context.Context, resumeText, jdText string) string {
	prompt := f.promptBuilder.BuildFeedbackPrompt(resumeText, jdText)

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	log.Printf("📝 Feedback prompt length: %d characters", len(prompt))

	failed := false
	response, err := f.generator.Generate(ctx, prompt)
	feedback := strings.TrimSpace(response)
	switch {
	case err != nil:
		log.Printf("❌ Feedback generation failed: %v", err)
		feedback = fmt.Sprintf("LLM Error: %v", err)
		failed = true
	case feedback == "":
		log.Println("⚠️ Empty response received from generation backend")
		feedback = FallbackFeedback
		failed = true
	default:
		log.Printf("✅ Feedback received: %d characters", len(feedback))
	}

	f.record(resumeText, jdText, feedback, failed)
	return feedback
}

func (f *feedbackService) record(resumeText, jdText, feedback string, failed bool) {
	if f.feedbackRepo == nil {
		return
	}

	row := &models.Feedback{
		Provider:    f.generator.Name(),
		ResumeChars: len([]rune(resumeText)),
		JDChars:     len([]rune(jdText)),
		Feedback:    feedback,
		Failed:      failed,
		CreatedAt:   time.Now(),
	}
	if err := f.feedbackRepo.Create(row); err != nil {
		log.Printf("⚠️  Failed to record feedback: %v\n", err)
	}
}
