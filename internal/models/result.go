package models

type RankedResume struct {
	ResumeID string  `json:"resume_id"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
	FullText string  `json:"full_text"`
}

type RankResponse struct {
	RankedResumes      []RankedResume `json:"ranked_resumes"`
	JobDescriptionText string         `json:"job_description_text"`
}

type UploadResumeResponse struct {
	ResumeID string `json:"resume_id"`
	Msg      string `json:"msg"`
}

type FeedbackRequest struct {
	ResumeText string `json:"resume_text"`
	JDText     string `json:"jd_text"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type StoredResume struct {
	ResumeID string `json:"resume_id"`
	Filename string `json:"filename"`
	Position int    `json:"position"`
	Text     string `json:"text,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

type ResumeListResponse struct {
	Count   int            `json:"count"`
	Resumes []StoredResume `json:"resumes"`
}

// ErrorResponse carries the message twice: "error" for API clients and
// "detail" for the browser client.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}

func NewErrorResponse(code int, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Detail: msg, Code: code}
}
