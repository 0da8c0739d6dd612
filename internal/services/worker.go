package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Upload is one submitted file.
type Upload struct {
	Filename string
	Data     []byte
}

// EmbeddedDocument is an extracted and embedded upload.
type EmbeddedDocument struct {
	Filename string
	Text     string
	Vector   []float32
}

type Worker interface {
	// ProcessBatch extracts and embeds uploads concurrently. Results keep the
	// order of uploads; the first failure cancels the rest.
	ProcessBatch(ctx context.Context, uploads []Upload) ([]EmbeddedDocument, error)
}

type worker struct {
	pdfParser   PDFParserService
	embedder    EmbeddingService
	concurrency int
}

func NewWorker(pdfParser PDFParserService, embedder EmbeddingService, concurrency int) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &worker{
		pdfParser:   pdfParser,
		embedder:    embedder,
		concurrency: concurrency,
	}
}

// ProcessBatch implements Worker.
func (w *worker) ProcessBatch(ctx context.Context, uploads []Upload) ([]EmbeddedDocument, error) {
	docs := make([]EmbeddedDocument, len(uploads))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, upload := range uploads {
		g.Go(func() error {
			doc, err := w.process(ctx, upload)
			if err != nil {
				return err
			}
			docs[i] = *doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("❌ Batch processing failed: %v\n", err)
		return nil, err
	}

	return docs, nil
}

func (w *worker) process(ctx context.Context, upload Upload) (*EmbeddedDocument, error) {
	text, err := w.pdfParser.ExtractTextFromBytes(upload.Filename, upload.Data)
	if err != nil {
		return nil, err
	}

	vector, err := w.embedder.Embed(ctx, text)
	if err != nil {
		return nil, &EmbeddingError{Filename: upload.Filename, Err: err}
	}

	return &EmbeddedDocument{Filename: upload.Filename, Text: text, Vector: vector}, nil
}
