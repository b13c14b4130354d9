package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thought_leadership_workflow/config"
	"thought_leadership_workflow/generator"
	"thought_leadership_workflow/workflow"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	orch, err := workflow.New(generator.MockLLM{}, log)
	require.NoError(t, err)

	srv, err := New(Options{
		Orchestrator: orch,
		Config:       config.Config{RunTimeout: time.Minute},
		SkipKeyCheck: true,
		Logger:       log,
		OutputDir:    t.TempDir(),
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func waitForCompletion(t *testing.T, h http.Handler) Status {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		rec := doJSON(t, h, http.MethodGet, "/status", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		st := decode[Status](t, rec)
		if !st.Running && (st.Output != "" || st.Error != "") {
			return st
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("workflow did not complete in time")
	return Status{}
}

func TestStatusInitiallyIdle(t *testing.T) {
	h := newTestServer(t).Routes()
	rec := doJSON(t, h, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[Status](t, rec)
	assert.False(t, st.Running)
	assert.Empty(t, st.Output)
}

func TestStartWorkflowValidation(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{"context": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{"context": "ok", "num_posts": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/start_workflow", strings.NewReader("{not json"))
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestStartWorkflowRunsToCompletion(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{
		"context":   "We sell AI customer service tools.",
		"num_posts": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[startWorkflowResp](t, rec)
	assert.True(t, resp.Success)

	st := waitForCompletion(t, h)
	assert.Empty(t, st.Error)
	assert.Equal(t, "Complete!", st.Progress)
	assert.NotContains(t, st.Output, workflow.SectionValidation)
	assert.Contains(t, st.Output, workflow.SectionLinkedIn)
	assert.Contains(t, st.OutputHTML, "<h1")

	// The full report, validation included, lands on disk.
	entries, err := os.ReadDir(srv.outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "output_"))
	data, err := os.ReadFile(filepath.Join(srv.outputDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), workflow.SectionValidation)
}

func TestSecondWorkflowRejectedWhileRunning(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	// Claim the run slot as a running workflow would.
	require.True(t, srv.state.tryStart("run-1"))
	srv.state.setProgress("Generating content with AI agents...")

	rec := doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{"context": "ctx"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Workflow is already running", body["error"])

	// The running workflow's state is untouched.
	st := srv.state.snapshot()
	assert.True(t, st.Running)
	assert.Equal(t, "Generating content with AI agents...", st.Progress)
}

func TestDownloadPDFWithoutOutput(t *testing.T) {
	h := newTestServer(t).Routes()
	rec := doJSON(t, h, http.MethodGet, "/download_pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadPDFAfterRun(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{"context": "ctx", "num_posts": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	waitForCompletion(t, h)

	rec = doJSON(t, h, http.MethodGet, "/download_pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestUploadRejectsNonPDF(t *testing.T) {
	h := newTestServer(t).Routes()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pdf", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plain text"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "File must be a PDF", body["error"])
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	h := newTestServer(t).Routes()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pdf", "huge.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), maxUploadBytes+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "File is too large (16MB maximum)", body["error"])
}

func TestUploadRequiresFile(t *testing.T) {
	h := newTestServer(t).Routes()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", sanitizeFilename("report.pdf"))
	assert.Equal(t, "report.pdf", sanitizeFilename("../../etc/report.pdf"))
	assert.Equal(t, "my_report_v2.pdf", sanitizeFilename("my report?v2.pdf"))
	assert.Equal(t, "evil.pdf", sanitizeFilename(`C:\tmp\evil.pdf`))
}

func TestMissingCredentialsFailTheRun(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	orch, err := workflow.New(generator.MockLLM{}, log)
	require.NoError(t, err)

	srv, err := New(Options{
		Orchestrator: orch,
		Config:       config.Config{RunTimeout: time.Minute, OpenAIAPIKey: "your_openai_api_key_here"},
		Logger:       log,
		OutputDir:    t.TempDir(),
	})
	require.NoError(t, err)
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodPost, "/start_workflow", map[string]any{"context": "ctx"})
	require.Equal(t, http.StatusOK, rec.Code)

	st := waitForCompletion(t, h)
	assert.Contains(t, st.Error, "OPENAI_API_KEY")
	assert.Equal(t, "Error occurred", st.Progress)
}
