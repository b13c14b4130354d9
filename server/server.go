package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"thought_leadership_workflow/config"
	"thought_leadership_workflow/scraper"
	"thought_leadership_workflow/workflow"
)

//go:embed web/index.html
var embeddedWeb embed.FS

const maxUploadBytes = 16 << 20 // 16MB, matches the frontend's stated limit

// Options wires the server's collaborators.
type Options struct {
	Orchestrator *workflow.Orchestrator
	LinkedIn     *scraper.LinkedInScraper // nil disables LinkedIn scraping (fallback examples only)
	X            *scraper.XScraper        // nil disables X scraping
	Config       config.Config
	SkipKeyCheck bool // mock mode runs without provider credentials
	Logger       *logrus.Logger
	OutputDir    string // where per-run output files land, "" = cwd
}

type Server struct {
	orch         *workflow.Orchestrator
	linkedin     *scraper.LinkedInScraper
	x            *scraper.XScraper
	cfg          config.Config
	skipKeyCheck bool
	state        *stateCell
	validate     *validator.Validate
	log          *logrus.Logger
	outputDir    string
}

func New(opts Options) (*Server, error) {
	if opts.Orchestrator == nil {
		return nil, errors.New("orchestrator is required")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		orch:         opts.Orchestrator,
		linkedin:     opts.LinkedIn,
		x:            opts.X,
		cfg:          opts.Config,
		skipKeyCheck: opts.SkipKeyCheck,
		state:        &stateCell{},
		validate:     validator.New(),
		log:          log,
		outputDir:    opts.OutputDir,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/start_workflow", s.handleStartWorkflow)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/download_pdf", s.handleDownloadPDF)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type startWorkflowReq struct {
	Context      string   `json:"context" validate:"required"`
	NumPosts     int      `json:"num_posts" validate:"gte=1"`
	LinkedInURLs []string `json:"linkedin_urls"`
	XURLs        []string `json:"x_urls"`
	XSearchTerms []string `json:"x_search_terms"`
}

type startWorkflowResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := embeddedWeb.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "frontend not bundled")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleStartWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req startWorkflowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.NumPosts == 0 {
		req.NumPosts = 3
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Context) == "" {
		writeError(w, http.StatusBadRequest, "Context cannot be empty")
		return
	}

	runID := uuid.NewString()
	if !s.state.tryStart(runID) {
		writeError(w, http.StatusBadRequest, "Workflow is already running")
		return
	}

	// The run outlives this request; it carries its own timeout.
	go s.runWorkflow(context.Background(), runID, req)

	writeJSON(w, http.StatusOK, startWorkflowResp{Success: true, Message: "Workflow started successfully"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.state.snapshot())
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	full := s.state.fullReport()
	if full == "" {
		writeError(w, http.StatusBadRequest, "No output available to download")
		return
	}
	data, err := buildPDF(full)
	if err != nil {
		s.log.WithError(err).Error("PDF generation failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="thought_leadership_posts.pdf"`)
	_, _ = w.Write(data)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
