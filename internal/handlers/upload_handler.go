package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

type UploadHandler struct {
	ranker      services.RankerService
	maxFileSize int64
}

func NewUploadHandler(ranker services.RankerService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		ranker:      ranker,
		maxFileSize: maxFileSize,
	}
}

// HandleUploadResume handles POST /upload_resume/
func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	resume, err := readUpload(fh, h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.ranker.UploadResume(c.UserContext(), resume)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}
