package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

const (
	jdField      = "jd_file"
	resumesField = "resume_files"
)

type RankHandler struct {
	ranker      services.RankerService
	maxFileSize int64
}

func NewRankHandler(ranker services.RankerService, maxFileSize int64) *RankHandler {
	return &RankHandler{
		ranker:      ranker,
		maxFileSize: maxFileSize,
	}
}

// HandleRankBatch handles POST /rank_resumes/ in batch mode: one job
// description plus any number of resumes, all ranked.
func (h *RankHandler) HandleRankBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "failed to parse multipart form")
	}

	jdFiles := form.File[jdField]
	if len(jdFiles) == 0 {
		return badRequest(c, "jd_file is required")
	}
	jd, err := readUpload(jdFiles[0], h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resumeFiles := form.File[resumesField]
	resumes := make([]services.Upload, 0, len(resumeFiles))
	for _, fh := range resumeFiles {
		upload, err := readUpload(fh, h.maxFileSize)
		if err != nil {
			return badRequest(c, err.Error())
		}
		resumes = append(resumes, upload)
	}

	resp, err := h.ranker.RankBatch(c.UserContext(), jd, resumes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

// HandleRankStored handles POST /rank_resumes/ in incremental mode: the job
// description is ranked against every uploaded resume.
func (h *RankHandler) HandleRankStored(c *fiber.Ctx) error {
	fh, err := c.FormFile(jdField)
	if err != nil {
		return badRequest(c, "jd_file is required")
	}

	jd, err := readUpload(fh, h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.ranker.RankStored(c.UserContext(), jd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}
