package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextFromBytes(filename string, data []byte) (string, error)
	ExtractTextWithMetaData(filename string, data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	Filename  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	return p.ExtractTextFromBytes(filepath.Base(filePath), data)
}

// ExtractTextFromBytes implements PDFParserService.
func (p *pdfParserService) ExtractTextFromBytes(filename string, data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(filename, data)
	if err != nil {
		return "", err
	}

	return content.Text, nil
}

// ExtractTextWithMetaData concatenates the text of every page in page order.
// A page without a text layer contributes an empty string; only a stream
// that cannot be parsed as a PDF is an error.
func (p *pdfParserService) ExtractTextWithMetaData(filename string, data []byte) (content *PDFContent, err error) {
	// The pdf reader panics on malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &DocumentFormatError{Filename: filename, Err: fmt.Errorf("%v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentFormatError{Filename: filename, Err: err}
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Scanned or broken pages contribute nothing
			continue
		}

		textBuilder.WriteString(text)
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		Filename:  filename,
	}, nil
}

// CleanText trims every line and drops the blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
