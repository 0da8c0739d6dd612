package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorageSaveBytes(t *testing.T) {
	root := t.TempDir()
	storage := NewStorageService(filepath.Join(root, "uploads"))
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir: %v", err)
	}

	path, err := storage.SaveBytes("resumes", "cv.pdf", []byte("first"))
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	if want := filepath.Join(root, "uploads", "resumes", "cv.pdf"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// Same name overwrites.
	if _, err := storage.SaveBytes("resumes", "cv.pdf", []byte("second")); err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("upload dir has %d entries, want 1 (temp files left behind?)", len(entries))
	}
}

func TestSafeFilename(t *testing.T) {
	tests := map[string]string{
		"cv.pdf":             "cv.pdf",
		"../../etc/passwd":   "passwd",
		`C:\Users\me\cv.pdf`: "cv.pdf",
		"..":                 "upload.pdf",
		"":                   "upload.pdf",
	}
	for in, want := range tests {
		if got := safeFilename(in); got != want {
			t.Errorf("safeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
