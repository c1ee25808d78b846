package chi

// ErrorCode is the machine-readable error kind of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeRecordNotFound         ErrorCode = "record_not_found"
	CodeUnsupportedLanguage    ErrorCode = "unsupported_language"
	CodeMissingContent         ErrorCode = "missing_content"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeAnswerProviderError    ErrorCode = "answer_provider_error"
	CodeSemanticSearchDisabled ErrorCode = "semantic_search_disabled"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Q     *string
	Lang  *string
	Mode  *string
	Limit *int
}

// RecordSummary is one search hit.
type RecordSummary struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	TypeLabel   string   `json:"type_label"`
	Name        string   `json:"name"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Lang    string          `json:"lang"`
	Mode    string          `json:"mode"`
	Total   int             `json:"total"`
	Results []RecordSummary `json:"results"`
}

// ImageResponse is a gallery entry.
type ImageResponse struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// RecordResponse is the body of GET /records/{id}.
type RecordResponse struct {
	RecordSummary
	Lang      string          `json:"lang"`
	Knowledge string          `json:"knowledge"`
	Images    []ImageResponse `json:"images"`
}

// AskRequest is the body of POST /records/{id}/ask.
type AskRequest struct {
	Question string `json:"question"`
	Lang     string `json:"lang,omitempty"`
}

// AskResponse is the reply to a follow-up question.
type AskResponse struct {
	Answer  string `json:"answer"`
	Source  string `json:"source"`
	Outcome string `json:"outcome"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
