package services

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

const (
	snippetLength = 300

	resumeUploadDir         = "resumes"
	jobDescriptionUploadDir = "job_descriptions"

	uploadMessage = "Resume uploaded and indexed successfully"
)

type RankerService interface {
	// RankBatch ranks every submitted resume against the job description
	// using an index built for this call only.
	RankBatch(ctx context.Context, jd Upload, resumes []Upload) (*models.RankResponse, error)
	// UploadResume stores, embeds and indexes one resume in the persistent store.
	UploadResume(ctx context.Context, resume Upload) (*models.UploadResumeResponse, error)
	// RankStored ranks the persistent store against the job description and
	// returns at most the configured top k.
	RankStored(ctx context.Context, jd Upload) (*models.RankResponse, error)
}

type rankerService struct {
	pdfParser PDFParserService
	embedder  EmbeddingService
	worker    Worker
	store     ResumeStore
	storage   StorageService
	docRepo   repositories.DocumentRepository
	topK      int
}

// NewRankerService wires the orchestrator. store, storage and docRepo are
// only used by the incremental flow and may be nil for batch-only callers.
func NewRankerService(
	pdfParser PDFParserService,
	embedder EmbeddingService,
	worker Worker,
	store ResumeStore,
	storage StorageService,
	docRepo repositories.DocumentRepository,
	topK int,
) RankerService {
	return &rankerService{
		pdfParser: pdfParser,
		embedder:  embedder,
		worker:    worker,
		store:     store,
		storage:   storage,
		docRepo:   docRepo,
		topK:      topK,
	}
}

// RankBatch implements RankerService.
func (r *rankerService) RankBatch(ctx context.Context, jd Upload, resumes []Upload) (*models.RankResponse, error) {
	jdText, jdVector, err := r.extractAndEmbed(ctx, jd)
	if err != nil {
		return nil, err
	}

	log.Printf("📄 Ranking batch of %d resumes against %s\n", len(resumes), jd.Filename)

	docs, err := r.worker.ProcessBatch(ctx, resumes)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return &models.RankResponse{RankedResumes: []models.RankedResume{}, JobDescriptionText: jdText}, nil
	}

	index := NewFlatIndex(r.embedder.Dimension())
	for _, doc := range docs {
		if _, err := index.Add(doc.Vector); err != nil {
			return nil, &EmbeddingError{Filename: doc.Filename, Err: err}
		}
	}

	neighbors, err := index.Search(jdVector, len(docs))
	if err != nil {
		return nil, fmt.Errorf("failed to search batch index: %w", err)
	}

	results := make([]models.RankedResume, 0, len(neighbors))
	for _, n := range neighbors {
		doc := docs[n.Position]
		results = append(results, rankedResume(ResumeID(doc.Filename, n.Position), doc.Filename, doc.Text, n.Distance))
	}
	sortByScore(results)

	return &models.RankResponse{RankedResumes: results, JobDescriptionText: jdText}, nil
}

// UploadResume implements RankerService.
func (r *rankerService) UploadResume(ctx context.Context, resume Upload) (*models.UploadResumeResponse, error) {
	filePath, err := r.storage.SaveBytes(resumeUploadDir, resume.Filename, resume.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	text, vector, err := r.extractAndEmbed(ctx, resume)
	if err != nil {
		return nil, err
	}

	indexed, err := r.store.Add(ctx, resume.Filename, text, vector)
	if err != nil {
		return nil, fmt.Errorf("failed to index resume: %w", err)
	}

	log.Printf("📥 Resume %s indexed at position %d\n", indexed.ID, indexed.Position)
	r.audit(indexed.ID, resume.Filename, models.FileTypeResume, filePath, text)

	return &models.UploadResumeResponse{ResumeID: indexed.ID, Msg: uploadMessage}, nil
}

// RankStored implements RankerService.
func (r *rankerService) RankStored(ctx context.Context, jd Upload) (*models.RankResponse, error) {
	filePath, err := r.storage.SaveBytes(jobDescriptionUploadDir, jd.Filename, jd.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store job description: %w", err)
	}

	jdText, jdVector, err := r.extractAndEmbed(ctx, jd)
	if err != nil {
		return nil, err
	}
	r.audit("", jd.Filename, models.FileTypeJobDescription, filePath, jdText)

	// The store only grows, so k stays valid even if uploads land meanwhile.
	k := ClampK(r.topK, r.store.Len())
	matches, err := r.store.Search(ctx, jdVector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search resume index: %w", err)
	}

	results := make([]models.RankedResume, 0, len(matches))
	for _, m := range matches {
		results = append(results, rankedResume(m.Resume.ID, m.Resume.Filename, m.Resume.Text, m.Distance))
	}
	sortByScore(results)

	log.Printf("🔍 Ranked %d of %d stored resumes against %s\n", len(results), r.store.Len(), jd.Filename)
	return &models.RankResponse{RankedResumes: results, JobDescriptionText: jdText}, nil
}

func (r *rankerService) extractAndEmbed(ctx context.Context, upload Upload) (string, []float32, error) {
	text, err := r.pdfParser.ExtractTextFromBytes(upload.Filename, upload.Data)
	if err != nil {
		return "", nil, err
	}

	vector, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return "", nil, &EmbeddingError{Filename: upload.Filename, Err: err}
	}

	return text, vector, nil
}

func (r *rankerService) audit(resumeID, filename, fileType, filePath, text string) {
	if r.docRepo == nil {
		return
	}

	doc := &models.Document{
		ResumeID:         resumeID,
		OriginalFileName: filename,
		FileType:         fileType,
		FilePath:         filePath,
		CharCount:        len([]rune(text)),
		CreatedAt:        time.Now(),
	}
	if err := r.docRepo.Create(doc); err != nil {
		log.Printf("⚠️  Failed to record %s document %s: %v\n", fileType, filename, err)
	}
}

func rankedResume(resumeID, filename, text string, distance float64) models.RankedResume {
	return models.RankedResume{
		ResumeID: resumeID,
		Filename: filename,
		Score:    distance,
		Snippet:  Snippet(text, snippetLength),
		FullText: text,
	}
}

// sortByScore orders results best match first (lowest distance).
func sortByScore(results []models.RankedResume) {
	slices.SortStableFunc(results, func(a, b models.RankedResume) int {
		return cmp.Compare(a.Score, b.Score)
	})
}
