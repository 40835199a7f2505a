// Package api exposes the HTTP interface for the miner service.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pdftext"
	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
	"github.com/himanshu-yaduvanshi/article-automation/internal/urlextract"
)

// receivedDateLayout is the wire format for received dates.
const receivedDateLayout = "2006-01-02"

// maxDocumentBytes caps uploaded newsletter documents.
const maxDocumentBytes = 32 << 20

// Server wires HTTP handlers to the pipeline runner and ledger.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	ledger pipeline.Ledger
	clock  pipeline.Clock
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	runner *pipeline.Runner,
	ledger pipeline.Ledger,
	clock pipeline.Clock,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		runner: runner,
		ledger: ledger,
		clock:  clock,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/articles", s.processArticle)
		r.Post("/documents", s.extractDocumentURLs)
		r.Post("/documents/process", s.processBatch)
		r.Get("/records", s.listRecords)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type articleRequest struct {
	ArticleURL   string `json:"article_url"`
	ReceivedDate string `json:"received_date"`
}

// processArticle handles the single-URL flow: one task through the
// full pipeline with the ledger persisted afterwards.
func (s *Server) processArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	task, err := s.toTask(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.runner.ProcessBatch(r.Context(), []pipeline.ArticleTask{task})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, records[0])
}

type documentURLsResponse struct {
	Tasks []articleRequest `json:"tasks"`
}

// extractDocumentURLs handles the newsletter flow: a PDF (or
// already-converted text) is reduced to candidate URLs, each paired
// with an editable received date defaulting to today.
func (s *Server) extractDocumentURLs(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read document body")
		return
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, "empty document")
		return
	}

	text := string(body)
	if isPDF(r.Header.Get("Content-Type"), body) {
		text, err = pdftext.Text(body)
		if err != nil {
			s.logger.Error("pdf conversion failed", zap.Error(err))
			s.writeError(w, http.StatusBadRequest, "document is not a readable PDF")
			return
		}
	}

	today := s.clock.Now().Format(receivedDateLayout)
	urls := urlextract.Extract(text)
	tasks := make([]articleRequest, 0, len(urls))
	for _, u := range urls {
		tasks = append(tasks, articleRequest{ArticleURL: u, ReceivedDate: today})
	}
	s.writeJSON(w, http.StatusOK, documentURLsResponse{Tasks: tasks})
}

type batchRequest struct {
	Tasks []articleRequest `json:"tasks"`
}

type batchResponse struct {
	Records []pipeline.ArticleRecord `json:"records"`
}

// processBatch runs the confirmed task list sequentially and persists
// the ledger once at the end.
func (s *Server) processBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Tasks) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one task required")
		return
	}

	tasks := make([]pipeline.ArticleTask, 0, len(req.Tasks))
	for _, in := range req.Tasks {
		task, err := s.toTask(in)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tasks = append(tasks, task)
	}

	records, err := s.runner.ProcessBatch(r.Context(), tasks)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, batchResponse{Records: records})
}

func (s *Server) listRecords(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ledger.Records())
}

func (s *Server) toTask(req articleRequest) (pipeline.ArticleTask, error) {
	url := strings.TrimSpace(req.ArticleURL)
	if url == "" {
		return pipeline.ArticleTask{}, errInvalid("article_url is required")
	}
	received := s.clock.Now()
	if req.ReceivedDate != "" {
		parsed, err := time.Parse(receivedDateLayout, req.ReceivedDate)
		if err != nil {
			return pipeline.ArticleTask{}, errInvalid("received_date must be YYYY-MM-DD")
		}
		received = parsed
	}
	return pipeline.ArticleTask{URL: url, ReceivedDate: received}, nil
}

func isPDF(contentType string, body []byte) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	return len(body) >= 5 && string(body[:5]) == "%PDF-"
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
