package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/services/site/resume"
)

const resumeFilename = "haley-bird-resume.md"

type resumeResponse struct {
	Resume      any           `json:"resume"`
	Format      resume.Format `json:"format"`
	Cached      bool          `json:"cached"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Source      string        `json:"source"`
}

func (h handlers) loadResume(r *http.Request) (resume.Rendered, bool, error) {
	return h.resume.Get(r.Context(), resume.LoaderFor(h.services.Content, h.services.Now))
}

func (h handlers) handleResume(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("format"))
	format, ok := resume.ParseFormat(raw)
	if !ok {
		writeError(w, r, apperrors.WithMetadata(apperrors.CodeResumeFormatBad, "unsupported resume format", map[string]string{"Format": raw}))
		return
	}
	rendered, cached, err := h.loadResume(r)
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeContentUnavailable, "build resume", err))
		return
	}
	response := resumeResponse{
		Resume:      rendered.Markdown,
		Format:      format,
		Cached:      cached,
		LastUpdated: rendered.Document.LastUpdated,
		Source:      rendered.Document.Source,
	}
	if format == resume.FormatJSON {
		response.Resume = rendered.Document
	}
	writeJSON(w, http.StatusOK, response)
}

func (h handlers) handleResumeMarkdown(w http.ResponseWriter, r *http.Request) {
	rendered, _, err := h.loadResume(r)
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeContentUnavailable, "build resume", err))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+resumeFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendered.Markdown))
}

func (h handlers) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	rendered, _, err := h.loadResume(r)
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeContentUnavailable, "build resume", err))
		return
	}
	templ.Handler(resume.Page(rendered.Document)).ServeHTTP(w, r)
}
