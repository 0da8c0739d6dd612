package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
	}
}

// HandleFeedback handles POST /llm_feedback/. Backend failures are reported
// inside the feedback text, so a parsed request always gets 200.
func (h *FeedbackHandler) HandleFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	feedback := h.feedback.GenerateFeedback(c.UserContext(), req.ResumeText, req.JDText)

	return c.JSON(models.FeedbackResponse{Feedback: feedback})
}
