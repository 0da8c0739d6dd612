package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ranker/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByResumeID(resumeID string) (*models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByResumeID implements DocumentRepository.
func (d *documentRepository) FindByResumeID(resumeID string) (*models.Document, error) {
	var doc models.Document
	err := d.db.
		Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// NewDocumentRepository returns nil when db is nil so callers can skip auditing.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	if db == nil {
		return nil
	}
	return &documentRepository{db: db}
}
