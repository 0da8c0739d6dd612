package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/resume-ranker/internal/models"
)

// qdrantResumeStore keeps the persistent index in a Qdrant collection. Point
// ids are insertion positions; scores use Euclid distance and are squared so
// they match the in-memory store.
type qdrantResumeStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64

	// mu serializes position assignment with the upsert.
	mu    sync.Mutex
	count int
}

func NewQdrantResumeStore(urlStr, apiKey, collectionName string, dimension int) (ResumeStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	store := &qdrantResumeStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(dimension),
	}

	if err := store.initCollection(context.Background()); err != nil {
		client.Close()
		return nil, err
	}

	return store, nil
}

// initCollection recreates the collection so every process starts with an
// empty index.
func (q *qdrantResumeStore) initCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		if err := q.client.DeleteCollection(ctx, q.collectionName); err != nil {
			return fmt.Errorf("failed to reset collection: %w", err)
		}
		log.Printf("♻️  Qdrant collection '%s' reset\n", q.collectionName)
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Add implements ResumeStore.
func (q *qdrantResumeStore) Add(ctx context.Context, filename, text string, vector []float32) (*models.IndexedResume, error) {
	if uint64(len(vector)) != q.vectorSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), q.vectorSize)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	position := q.count
	entry := models.IndexedResume{
		Resume: models.Resume{
			ID:       ResumeID(filename, position),
			Filename: filename,
			Text:     text,
		},
		Position: position,
		Vector:   vector,
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(position)),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]any{
			"resume_id": entry.ID,
			"filename":  filename,
			"text":      text,
			"position":  int64(position),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert point: %w", err)
	}

	q.count++
	return &entry, nil
}

// Search implements ResumeStore.
func (q *qdrantResumeStore) Search(ctx context.Context, query []float32, k int) ([]ResumeMatch, error) {
	if uint64(len(query)) != q.vectorSize {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(query), q.vectorSize)
	}

	stored := q.Len()
	if k <= 0 || stored == 0 {
		return []ResumeMatch{}, nil
	}
	if k > stored {
		return nil, fmt.Errorf("%w: k=%d, stored=%d", ErrInvalidK, k, stored)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(query...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]ResumeMatch, 0, len(points))
	for _, point := range points {
		resume := resumeFromPayload(point.GetId(), point.GetPayload())
		distance := float64(point.GetScore())
		matches = append(matches, ResumeMatch{Resume: resume, Distance: distance * distance})
	}

	return matches, nil
}

// Get implements ResumeStore.
func (q *qdrantResumeStore) Get(ctx context.Context, resumeID string) (*models.IndexedResume, error) {
	position, ok := positionFromResumeID(resumeID)
	if !ok || position >= q.Len() {
		return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, resumeID)
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewIDNum(uint64(position))},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}

	for _, point := range points {
		resume := resumeFromPayload(point.GetId(), point.GetPayload())
		if resume.ID == resumeID {
			return &resume, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, resumeID)
}

// List implements ResumeStore.
func (q *qdrantResumeStore) List(ctx context.Context) ([]models.IndexedResume, error) {
	stored := q.Len()
	if stored == 0 {
		return []models.IndexedResume{}, nil
	}

	points, err := q.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: q.collectionName,
		Limit:          qdrant.PtrOf(uint32(stored)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}

	resumes := make([]models.IndexedResume, 0, len(points))
	for _, point := range points {
		resumes = append(resumes, resumeFromPayload(point.GetId(), point.GetPayload()))
	}

	return resumes, nil
}

// Len implements ResumeStore.
func (q *qdrantResumeStore) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.count
}

// Close implements ResumeStore.
func (q *qdrantResumeStore) Close() error {
	return q.client.Close()
}

func resumeFromPayload(id *qdrant.PointId, payload map[string]*qdrant.Value) models.IndexedResume {
	resume := models.IndexedResume{Position: int(id.GetNum())}

	if v, ok := payload["resume_id"]; ok {
		resume.ID = v.GetStringValue()
	}
	if v, ok := payload["filename"]; ok {
		resume.Filename = v.GetStringValue()
	}
	if v, ok := payload["text"]; ok {
		resume.Text = v.GetStringValue()
	}

	return resume
}
