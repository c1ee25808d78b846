package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
	"github.com/kailas-cloud/guide/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/guide/internal/logger"
	answeruc "github.com/kailas-cloud/guide/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/guide/internal/usecase/health"
	searchuc "github.com/kailas-cloud/guide/internal/usecase/search"
)

const maxAskBodyBytes = 16 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinels lists the errors whose message is safe to return to clients.
var sentinels = []error{
	domain.ErrNotFound,
	domain.ErrUnsupportedLanguage,
	domain.ErrMissingContent,
	domain.ErrEmbeddingProviderError,
	domain.ErrAnswerProviderError,
	domain.ErrSemanticSearchDisabled,
}

// Server handles the guide HTTP API.
type Server struct {
	search        *searchuc.Service
	answers       *answeruc.Service
	health        *healthuc.Service
	metrics       http.Handler
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	answers *answeruc.Service,
	health *healthuc.Service,
) *Server {
	s := &Server{
		search:  search,
		answers: answers,
		health:  health,
		metrics: promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeRecordNotFound),
		sentinelHandler(domain.ErrMissingContent, http.StatusNotFound, CodeMissingContent),
		sentinelHandler(domain.ErrUnsupportedLanguage, http.StatusBadRequest, CodeUnsupportedLanguage),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrAnswerProviderError, http.StatusBadGateway, CodeAnswerProviderError),
		sentinelHandler(domain.ErrSemanticSearchDisabled, http.StatusNotImplemented, CodeSemanticSearchDisabled),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/records/{id}", s.GetRecord)
	r.Post("/records/{id}/ask", s.Ask)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	lang, err := language.Parse(deref(params.Lang))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.New(deref(params.Q), lang, mode.Mode(deref(params.Mode)), deref(params.Limit))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]RecordSummary, 0, len(results))
	for i := range results {
		item, err := summaryFromDomain(&results[i], lang)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query(),
		Lang:    string(req.Language()),
		Mode:    string(req.Mode()),
		Total:   len(items),
		Results: items,
	})
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	var rawLang *string
	if err := bindQuery(r, "lang", &rawLang); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	lang, err := language.Parse(deref(rawLang))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	rec, err := s.search.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := recordFromDomain(&rec, lang)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Ask handles POST /records/{id}/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lang, err := language.Parse(req.Lang)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ans, err := s.answers.Ask(r.Context(), chi.URLParam(r, "id"), req.Question, lang)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:  ans.Text,
		Source:  string(ans.Source),
		Outcome: string(ans.Outcome),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	if err := bindQuery(r, "q", &p.Q); err != nil {
		return p, err
	}
	if err := bindQuery(r, "lang", &p.Lang); err != nil {
		return p, err
	}
	if err := bindQuery(r, "mode", &p.Mode); err != nil {
		return p, err
	}
	if err := bindQuery(r, "limit", &p.Limit); err != nil {
		return p, err
	}
	return p, nil
}

// bindQuery binds an optional form-style query parameter the way generated oapi-codegen servers do.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func summaryFromDomain(rec *record.Record, lang language.Language) (RecordSummary, error) {
	c, err := rec.Content(lang)
	if err != nil {
		return RecordSummary{}, err
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return RecordSummary{
		ID:          rec.ID(),
		Type:        string(rec.Type()),
		TypeLabel:   rec.Type().Label(lang),
		Name:        c.Name,
		Tags:        tags,
		Description: c.Description,
	}, nil
}

func recordFromDomain(rec *record.Record, lang language.Language) (RecordResponse, error) {
	summary, err := summaryFromDomain(rec, lang)
	if err != nil {
		return RecordResponse{}, err
	}
	c, err := rec.Content(lang)
	if err != nil {
		return RecordResponse{}, err
	}

	images := make([]ImageResponse, 0, len(rec.Images()))
	for _, img := range rec.Images() {
		images = append(images, ImageResponse{
			ID:          img.ID,
			URL:         img.URL,
			Description: img.Description,
			Hint:        img.Hint,
		})
	}

	return RecordResponse{
		RecordSummary: summary,
		Lang:          string(lang),
		Knowledge:     c.Knowledge,
		Images:        images,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
