package handlers

import (
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

type ResumeHandler struct {
	store   services.ResumeStore
	docRepo repositories.DocumentRepository
}

// NewResumeHandler serves the persistent store. docRepo may be nil.
func NewResumeHandler(store services.ResumeStore, docRepo repositories.DocumentRepository) *ResumeHandler {
	return &ResumeHandler{
		store:   store,
		docRepo: docRepo,
	}
}

// HandleListResumes handles GET /resumes/
func (h *ResumeHandler) HandleListResumes(c *fiber.Ctx) error {
	entries, err := h.store.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	resumes := make([]models.StoredResume, 0, len(entries))
	for _, e := range entries {
		resumes = append(resumes, models.StoredResume{
			ResumeID: e.ID,
			Filename: e.Filename,
			Position: e.Position,
		})
	}

	return c.JSON(models.ResumeListResponse{
		Count:   len(resumes),
		Resumes: resumes,
	})
}

// HandleGetResume handles GET /resumes/:id
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	resumeID, err := url.PathUnescape(c.Params("id"))
	if err != nil || resumeID == "" {
		return badRequest(c, "Invalid resume id")
	}

	entry, err := h.store.Get(c.UserContext(), resumeID)
	if err != nil {
		return respondError(c, err)
	}

	response := models.StoredResume{
		ResumeID: entry.ID,
		Filename: entry.Filename,
		Position: entry.Position,
		Text:     entry.Text,
	}

	if h.docRepo != nil {
		if doc, err := h.docRepo.FindByResumeID(entry.ID); err == nil {
			response.FilePath = doc.FilePath
		} else {
			log.Printf("⚠️  No upload record for %s: %v\n", entry.ID, err)
		}
	}

	return c.JSON(response)
}
