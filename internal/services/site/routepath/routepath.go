// Package routepath stores canonical HTTP paths for the site API.
package routepath

import "net/url"

const (
	Health                   = "/up"
	APIPrefix                = "/api/"
	Portfolio                = "/api/portfolio"
	PortfolioCategoryPattern = Portfolio + "/{category}"
	NotionContentPrefix      = "/api/notion/content/"
	NotionContentPattern     = NotionContentPrefix + "{type}"
	NotionStatus             = "/api/notion/status"
	Resume                   = "/api/resume"
	ResumeMarkdown           = "/api/resume/markdown"
	ResumeHTML               = "/api/resume/html"
	Rooms                    = "/api/rooms"
	RoomPattern              = Rooms + "/{id}"
	Quality                  = "/api/quality"
	AudioPrefix              = "/api/audio/"
	AudioPattern             = AudioPrefix + "{file}"
	Vitals                   = "/api/vitals"
	VitalsSummary            = "/api/vitals/summary"
	SceneWS                  = "/api/scene/ws"
)

// PortfolioCategory returns the portfolio listing path for one category.
func PortfolioCategory(category string) string {
	return Portfolio + "/" + escapeSegment(category)
}

// NotionContent returns the workspace page path for one page kind.
func NotionContent(kind string) string {
	return NotionContentPrefix + escapeSegment(kind)
}

// Room returns the detail path for one room.
func Room(id string) string {
	return Rooms + "/" + escapeSegment(id)
}

// Audio returns the chime path for one room.
func Audio(roomID string) string {
	return AudioPrefix + escapeSegment(roomID) + ".wav"
}

func escapeSegment(raw string) string {
	return url.PathEscape(raw)
}
