package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

type uploadResp struct {
	Success  bool   `json:"success"`
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	// ParseMultipartForm alone only bounds in-memory buffering; the hard
	// cap on the whole request body lives in MaxBytesReader.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large (16MB maximum)")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No PDF file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "File must be a PDF")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	text, err := extractPDFText(strings.NewReader(string(data)), int64(len(data)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to extract text from PDF: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, uploadResp{
		Success:  true,
		Text:     text,
		Filename: sanitizeFilename(header.Filename),
	})
}

// extractPDFText pulls plain text out of every page, collapsing runs of
// whitespace inside a page and separating pages with blank lines.
func extractPDFText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the upload.
			continue
		}
		cleaned := strings.Join(strings.Fields(raw), " ")
		if cleaned != "" {
			pages = append(pages, cleaned)
		}
	}

	text := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", errors.New("no text could be extracted from the PDF")
	}
	return text, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}
