package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"alfredoptarigan/resume-ranker/internal/models"
)

// ResumeStore is the persistent similarity index: it grows by Add, never
// shrinks, and keeps each vector together with the record it was computed
// from.
type ResumeStore interface {
	Add(ctx context.Context, filename, text string, vector []float32) (*models.IndexedResume, error)
	Search(ctx context.Context, query []float32, k int) ([]ResumeMatch, error)
	Get(ctx context.Context, resumeID string) (*models.IndexedResume, error)
	List(ctx context.Context) ([]models.IndexedResume, error)
	Len() int
	Close() error
}

type ResumeMatch struct {
	Resume   models.IndexedResume
	Distance float64
}

type memoryResumeStore struct {
	mu        sync.RWMutex
	dimension int
	entries   []models.IndexedResume
	byID      map[string]int
}

func NewMemoryResumeStore(dimension int) ResumeStore {
	return &memoryResumeStore{
		dimension: dimension,
		byID:      make(map[string]int),
	}
}

// Add implements ResumeStore. The position and id are assigned under the
// write lock together with the append.
func (s *memoryResumeStore) Add(ctx context.Context, filename, text string, vector []float32) (*models.IndexedResume, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), s.dimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	position := len(s.entries)
	entry := models.IndexedResume{
		Resume: models.Resume{
			ID:       ResumeID(filename, position),
			Filename: filename,
			Text:     text,
		},
		Position: position,
		Vector:   vector,
	}
	s.entries = append(s.entries, entry)
	s.byID[entry.ID] = position

	return &entry, nil
}

// Search implements ResumeStore.
func (s *memoryResumeStore) Search(ctx context.Context, query []float32, k int) ([]ResumeMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	neighbors, err := searchNearest(query, s.dimension, len(s.entries), func(i int) []float32 {
		return s.entries[i].Vector
	}, k)
	if err != nil {
		return nil, err
	}

	matches := make([]ResumeMatch, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Position < 0 || n.Position >= len(s.entries) {
			continue
		}
		matches = append(matches, ResumeMatch{Resume: s.entries[n.Position], Distance: n.Distance})
	}

	return matches, nil
}

// Get implements ResumeStore.
func (s *memoryResumeStore) Get(ctx context.Context, resumeID string) (*models.IndexedResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	position, ok := s.byID[resumeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, resumeID)
	}

	entry := s.entries[position]
	return &entry, nil
}

// List implements ResumeStore.
func (s *memoryResumeStore) List(ctx context.Context) ([]models.IndexedResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.IndexedResume, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Len implements ResumeStore.
func (s *memoryResumeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Close implements ResumeStore.
func (s *memoryResumeStore) Close() error {
	return nil
}

// ResumeID derives the id of a resume from its filename and ordinal.
func ResumeID(filename string, ordinal int) string {
	return fmt.Sprintf("%s_%d", filename, ordinal)
}

// positionFromResumeID recovers the ordinal suffix of an id built by ResumeID.
func positionFromResumeID(resumeID string) (int, bool) {
	i := strings.LastIndex(resumeID, "_")
	if i < 0 {
		return 0, false
	}
	position, err := strconv.Atoi(resumeID[i+1:])
	if err != nil || position < 0 {
		return 0, false
	}
	return position, true
}
