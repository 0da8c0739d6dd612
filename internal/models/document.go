package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FileTypeResume         = "resume"
	FileTypeJobDescription = "job_description"
)

// Document is the audit row written for every stored upload.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID         string    `gorm:"type:text;index" json:"resume_id,omitempty"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileType         string    `gorm:"type:text" json:"file_type"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CharCount        int       `json:"char_count"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
