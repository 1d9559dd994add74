package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/atelierfolio/atelier/internal/content"
)

const (
	pageSourceMock   = "mock"
	pageSourceNotion = "notion"

	notionStatusConnected = "connected"
	notionStatusMock      = "using_mock_data"
)

type notionContentResponse struct {
	Source string       `json:"source"`
	Data   content.Page `json:"data"`
}

type notionStatusResponse struct {
	Configured bool   `json:"configured"`
	Status     string `json:"status"`
}

func (h handlers) handleNotionContent(w http.ResponseWriter, r *http.Request) {
	kind, _ := content.ParsePageKind(strings.TrimSpace(r.PathValue("type")))
	mock := notionContentResponse{Source: pageSourceMock, Data: content.MockPage(kind)}

	if !h.services.NotionConfigured || h.services.Pages == nil {
		writeJSON(w, http.StatusOK, mock)
		return
	}
	pageID := strings.TrimSpace(h.services.PageIDs[kind])
	if pageID == "" {
		writeJSON(w, http.StatusOK, mock)
		return
	}
	page, err := h.services.Pages.FetchPage(r.Context(), pageID)
	if err != nil {
		log.Printf("notion: fetch %s page %s failed, serving mock: %v", kind, pageID, err)
		writeJSON(w, http.StatusOK, mock)
		return
	}
	writeJSON(w, http.StatusOK, notionContentResponse{Source: pageSourceNotion, Data: page})
}

func (h handlers) handleNotionStatus(w http.ResponseWriter, r *http.Request) {
	status := notionStatusMock
	if h.services.NotionConfigured {
		status = notionStatusConnected
	}
	writeJSON(w, http.StatusOK, notionStatusResponse{Configured: h.services.NotionConfigured, Status: status})
}
