package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

// ErrorHandler is the Fiber error handler for the API. Every error leaves as
// {error, detail, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(models.NewErrorResponse(code, err.Error()))
}

// respondError maps service errors to client-facing status codes.
func respondError(c *fiber.Ctx, err error) error {
	var formatErr *services.DocumentFormatError
	var embedErr *services.EmbeddingError

	switch {
	case errors.As(err, &formatErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(
			fiber.StatusBadRequest,
			fmt.Sprintf("%s is not a readable PDF document", formatErr.Filename),
		))
	case errors.As(err, &embedErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.NewErrorResponse(
			fiber.StatusUnprocessableEntity,
			fmt.Sprintf("failed to embed %s", embedErr.Filename),
		))
	case errors.Is(err, services.ErrResumeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.NewErrorResponse(fiber.StatusNotFound, "Resume not found"))
	default:
		log.Printf("❌ Request failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.NewErrorResponse(
			fiber.StatusInternalServerError, err.Error(),
		))
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(fiber.StatusBadRequest, msg))
}

// readUpload loads one multipart file into memory after checking its size.
func readUpload(fh *multipart.FileHeader, maxFileSize int64) (services.Upload, error) {
	if maxFileSize > 0 && fh.Size > maxFileSize {
		return services.Upload{}, fmt.Errorf("%s is too large. Max size: %d bytes", fh.Filename, maxFileSize)
	}

	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.Upload{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	return services.Upload{Filename: fh.Filename, Data: data}, nil
}
