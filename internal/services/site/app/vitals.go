package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/services/site/vitals"
)

const (
	maxVitalsBodyBytes   = 4 * 1024
	defaultVitalsWindow  = 24 * time.Hour
	maxVitalsWindow      = 90 * 24 * time.Hour
	vitalsDisabledReason = "vitals store not configured"
)

type vitalsRecordResponse struct {
	Report vitals.Report `json:"report"`
}

type vitalsSummaryResponse struct {
	Since   time.Time        `json:"since"`
	Metrics []vitals.Summary `json:"metrics"`
}

func (h handlers) handleVitalsRecord(w http.ResponseWriter, r *http.Request) {
	if h.services.Vitals == nil {
		writeError(w, r, apperrors.New(apperrors.CodeVitalsUnavailable, vitalsDisabledReason))
		return
	}
	var report vitals.Report
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxVitalsBodyBytes))
	if err := decoder.Decode(&report); err != nil {
		writeError(w, r, errVitalsInvalid("body is not a vitals report", err))
		return
	}
	report, err := vitals.Normalize(report, h.services.Now())
	if err != nil {
		var validation *vitals.ValidationError
		if errors.As(err, &validation) {
			writeError(w, r, errVitalsInvalid(validation.Reason, err))
			return
		}
		writeError(w, r, err)
		return
	}
	if err := h.services.Vitals.RecordVital(r.Context(), report); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "record vital", err))
		return
	}
	writeJSON(w, http.StatusAccepted, vitalsRecordResponse{Report: report})
}

func (h handlers) handleVitalsSummary(w http.ResponseWriter, r *http.Request) {
	if h.services.Vitals == nil {
		writeError(w, r, apperrors.New(apperrors.CodeVitalsUnavailable, vitalsDisabledReason))
		return
	}
	window := defaultVitalsWindow
	if raw := strings.TrimSpace(r.URL.Query().Get("window")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 || parsed > maxVitalsWindow {
			writeError(w, r, errVitalsInvalid("window must be a positive duration up to 2160h", err))
			return
		}
		window = parsed
	}
	since := h.services.Now().Add(-window).UTC()
	summaries, err := h.services.Vitals.SummarizeVitals(r.Context(), since)
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "summarize vitals", err))
		return
	}
	if summaries == nil {
		summaries = []vitals.Summary{}
	}
	writeJSON(w, http.StatusOK, vitalsSummaryResponse{Since: since, Metrics: summaries})
}

func errVitalsInvalid(reason string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeVitalsInvalid, "invalid vitals report", map[string]string{"Reason": reason}, cause)
}
