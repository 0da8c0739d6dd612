package models

// Resume is a document record: created at extraction time and never mutated.
type Resume struct {
	ID       string `json:"resume_id"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// IndexedResume is a resume held by the persistent index together with the
// vector that was computed for it.
type IndexedResume struct {
	Resume
	Position int       `json:"position"`
	Vector   []float32 `json:"-"`
}
