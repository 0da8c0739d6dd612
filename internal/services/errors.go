package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned by Search when k exceeds the stored vector count.
	// Callers clamp k before searching.
	ErrInvalidK = errors.New("k exceeds stored vector count")

	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	ErrResumeNotFound = errors.New("resume not found")
)

// DocumentFormatError reports an upload that is not a parseable PDF.
type DocumentFormatError struct {
	Filename string
	Err      error
}

func (e *DocumentFormatError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("invalid PDF document: %v", e.Err)
	}
	return fmt.Sprintf("invalid PDF document %q: %v", e.Filename, e.Err)
}

func (e *DocumentFormatError) Unwrap() error {
	return e.Err
}

// EmbeddingError reports an embedding backend failure for one file.
type EmbeddingError struct {
	Filename string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("failed to embed %q: %v", e.Filename, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// GenerationServiceError reports a failed call to the text-generation backend.
type GenerationServiceError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GenerationServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}
