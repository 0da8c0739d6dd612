package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback logs one /llm_feedback/ call and what the backend answered.
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Provider    string    `gorm:"type:text" json:"provider"`
	ResumeChars int       `json:"resume_chars"`
	JDChars     int       `json:"jd_chars"`
	Feedback    string    `gorm:"type:text" json:"feedback"`
	Failed      bool      `gorm:"not null;default:false" json:"failed"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
