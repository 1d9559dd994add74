package server

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/platform/errors/i18n"
	"github.com/atelierfolio/atelier/internal/services/site/resume"
	"github.com/atelierfolio/atelier/internal/services/site/routepath"
)

type handlers struct {
	services  Services
	portfolio *portfolioCache
	resume    *resume.Cache
}

// NewHandler creates the site routes.
func NewHandler(services Services) http.Handler {
	services = services.normalized()
	h := handlers{
		services:  services,
		portfolio: newPortfolioCache(services.CacheTTL, services.Now),
		resume:    resume.NewCache(services.CacheTTL, services.Now),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	registerRoutes(mux, h)
	return mux
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Portfolio, h.handlePortfolio)
	mux.HandleFunc(http.MethodGet+" "+routepath.PortfolioCategoryPattern, h.handlePortfolioCategory)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotionContentPattern, h.handleNotionContent)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotionStatus, h.handleNotionStatus)
	mux.HandleFunc(http.MethodGet+" "+routepath.Resume, h.handleResume)
	mux.HandleFunc(http.MethodGet+" "+routepath.ResumeMarkdown, h.handleResumeMarkdown)
	mux.HandleFunc(http.MethodGet+" "+routepath.ResumeHTML, h.handleResumeHTML)
	mux.HandleFunc(http.MethodGet+" "+routepath.Rooms, h.handleRooms)
	mux.HandleFunc(http.MethodGet+" "+routepath.RoomPattern, h.handleRoom)
	mux.HandleFunc(http.MethodGet+" "+routepath.Quality, h.handleQuality)
	mux.HandleFunc(http.MethodGet+" "+routepath.AudioPattern, h.handleAudio)
	mux.HandleFunc(http.MethodPost+" "+routepath.Vitals, h.handleVitalsRecord)
	mux.HandleFunc(http.MethodGet+" "+routepath.VitalsSummary, h.handleVitalsSummary)
	mux.Handle(routepath.SceneWS, sceneHandler(h.services.SceneTick))
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("site: encode response: %v", err)
	}
}

// writeError renders err as {error, code}. The HTTP status follows the gRPC
// code of the domain error; anything else is reported as UNKNOWN.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	domainErr, ok := apperrors.As(err)
	if !ok {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, "unexpected error", err)
	}
	catalog := i18n.GetCatalog(r.Header.Get("Accept-Language"))
	message := catalog.Format(string(domainErr.Code), domainErr.Metadata)
	st := domainErr.Status(catalog.Locale(), message)
	httpStatus := apperrors.HTTPStatus(st.Code())
	if httpStatus >= http.StatusInternalServerError {
		log.Printf("site: %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, httpStatus, errorResponse{Error: message, Code: string(domainErr.Code)})
}
