// Package server exposes the generator over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ipsum/internal/domain"
	"ipsum/internal/usecase"
)

// Server handles generation requests.
type Server struct {
	synth    *usecase.Synthesizer
	defaults domain.Options
}

// New creates a Server. defaults fill any generation option the request
// leaves unset.
func New(synth *usecase.Synthesizer, defaults domain.Options) *Server {
	return &Server{synth: synth, defaults: defaults}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/health", s.handleHealth)
	return logMiddleware(mux)
}

// --- Handlers ---

type generateReq struct {
	Query string          `json:"query,omitempty"`
	Title string          `json:"title,omitempty"`
	Body  string          `json:"body,omitempty"`
	Words []string        `json:"words,omitempty"`
	Model domain.FreqModel `json:"model,omitempty"`

	Unit                  string        `json:"unit,omitempty"`
	Quantity              int           `json:"quantity,omitempty"`
	Format                string        `json:"format,omitempty"`
	SentencesPerParagraph *boundsDTO    `json:"sentences_per_paragraph,omitempty"`
	WordsPerSentence      *boundsDTO    `json:"words_per_sentence,omitempty"`

	IncludeTitle bool `json:"include_title,omitempty"`
	IncludeModel bool `json:"include_model,omitempty"`
}

type boundsDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type generateResp struct {
	Body       string           `json:"body"`
	Paragraphs [][]string       `json:"paragraphs,omitempty"`
	Title      string           `json:"title,omitempty"`
	Model      domain.FreqModel `json:"model,omitempty"`
}

type errorResp struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.synth.Synthesize(r.Context(), usecase.Request{
		Query:        req.Query,
		Title:        req.Title,
		Body:         req.Body,
		Words:        req.Words,
		Model:        req.Model,
		Options:      s.options(req),
		IncludeTitle: req.IncludeTitle,
		IncludeModel: req.IncludeModel,
	})
	if err != nil {
		status, resp := mapError(err)
		writeError(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, generateResp{
		Body:       result.Body,
		Paragraphs: result.Paragraphs,
		Title:      result.Title,
		Model:      result.Model,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// options merges request fields over the configured defaults.
func (s *Server) options(req generateReq) domain.Options {
	opts := s.defaults
	if req.Unit != "" {
		opts.Unit = domain.Unit(req.Unit)
	}
	if req.Quantity != 0 {
		opts.Quantity = req.Quantity
	}
	if req.Format != "" {
		opts.Format = domain.Format(req.Format)
	}
	if req.SentencesPerParagraph != nil {
		opts.SentencesPerParagraph = domain.Bounds{Min: req.SentencesPerParagraph.Min, Max: req.SentencesPerParagraph.Max}
	}
	if req.WordsPerSentence != nil {
		opts.WordsPerSentence = domain.Bounds{Min: req.WordsPerSentence.Min, Max: req.WordsPerSentence.Max}
	}
	return opts
}

// mapError translates the typed pipeline failures to HTTP statuses.
func mapError(err error) (int, errorResp) {
	var (
		notFound   *domain.NotFoundError
		ambiguous  *domain.AmbiguousError
		tooShort   *domain.BodyTooShortError
		fewTokens  *domain.NotEnoughTokensError
		fewWords   *domain.NotEnoughVocabularyError
		badOptions *domain.InvalidOptionsError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, errorResp{Error: err.Error()}
	case errors.As(err, &ambiguous):
		return http.StatusConflict, errorResp{Error: err.Error(), Suggestions: ambiguous.Suggestions}
	case errors.As(err, &badOptions),
		errors.Is(err, domain.ErrNoInput),
		errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, errorResp{Error: err.Error()}
	case errors.As(err, &tooShort),
		errors.As(err, &fewTokens),
		errors.As(err, &fewWords):
		return http.StatusUnprocessableEntity, errorResp{Error: err.Error()}
	default:
		return http.StatusBadGateway, errorResp{Error: err.Error()}
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp errorResp) {
	writeJSON(w, status, resp)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
