package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StorageService interface {
	SaveBytes(fileType, filename string, data []byte) (string, error)
	GetFilePath(fileType, filename string) string
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveBytes stores data under <upload>/<fileType>/<filename>. Uploads are
// keyed by filename, so a later upload with the same name replaces the
// earlier file. The write goes through a temp file and a rename so a reader
// never sees a partially written file.
func (s *storageService) SaveBytes(fileType, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.uploadPath, fileType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filePath := s.GetFilePath(fileType, filename)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(fileType, filename string) string {
	return filepath.Join(s.uploadPath, fileType, safeFilename(filename))
}

// safeFilename strips directories so an upload name cannot escape the
// upload root.
func safeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "upload.pdf"
	}
	return name
}
