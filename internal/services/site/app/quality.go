package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/atelierfolio/atelier/internal/scene/animate"
)

type qualityResponse struct {
	Capability capabilityView  `json:"capability"`
	Quality    animate.Quality `json:"quality"`
}

type capabilityView struct {
	Mobile     bool    `json:"mobile"`
	LowPower   bool    `json:"lowPower"`
	HighEndGPU bool    `json:"highEndGpu"`
	MemoryGB   float64 `json:"memoryGb"`
	Connection string  `json:"connection"`
}

var mobileUserAgentMarkers = []string{"Mobile", "Android", "iPhone", "iPad", "iPod"}

// capabilityFromRequest reads the client hints a browser sends. Missing or
// malformed hints leave the field unknown.
func capabilityFromRequest(r *http.Request) animate.Capability {
	var c animate.Capability
	switch strings.TrimSpace(r.Header.Get("Sec-CH-UA-Mobile")) {
	case "?1":
		c.Mobile = true
	case "?0":
	default:
		ua := r.Header.Get("User-Agent")
		for _, marker := range mobileUserAgentMarkers {
			if strings.Contains(ua, marker) {
				c.Mobile = true
				break
			}
		}
	}
	if raw := strings.TrimSpace(r.Header.Get("Device-Memory")); raw != "" {
		if gb, err := strconv.ParseFloat(raw, 64); err == nil && gb > 0 {
			c.MemoryGB = gb
		}
	}
	c.Connection = strings.ToLower(strings.TrimSpace(r.Header.Get("ECT")))
	return c.Normalize()
}

func (h handlers) handleQuality(w http.ResponseWriter, r *http.Request) {
	c := capabilityFromRequest(r)
	writeJSON(w, http.StatusOK, qualityResponse{
		Capability: capabilityView{
			Mobile:     c.Mobile,
			LowPower:   c.LowPower,
			HighEndGPU: c.HighEndGPU,
			MemoryGB:   c.MemoryGB,
			Connection: c.Connection,
		},
		Quality: animate.QualityFor(c),
	})
}
