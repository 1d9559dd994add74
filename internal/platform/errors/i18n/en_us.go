package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown            = "UNKNOWN"
	CodeRoomUnknown        = "ROOM_UNKNOWN"
	CodeMoodSourceBad      = "MOOD_SOURCE_INVALID"
	CodeAudioPosition      = "AUDIO_POSITION_INVALID"
	CodeFrameInvalid       = "FRAME_INVALID"
	CodeFrameRateLimit     = "FRAME_RATE_LIMITED"
	CodeResumeFormatBad    = "RESUME_FORMAT_INVALID"
	CodeContentUnavailable = "CONTENT_UNAVAILABLE"
	CodeContentPageUnset   = "CONTENT_PAGE_UNSET"
	CodeVitalsInvalid      = "VITALS_INVALID"
	CodeVitalsUnavailable  = "VITALS_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeUnknown:            "Something went wrong.",
	CodeRoomUnknown:        `Room "{{.Room}}" does not exist.`,
	CodeMoodSourceBad:      `Mood source must be "room" or "scroll".`,
	CodeAudioPosition:      "Listener position must be numeric.",
	CodeFrameInvalid:       "The scene frame could not be read.",
	CodeFrameRateLimit:     "Too many scene frames. Slow down.",
	CodeResumeFormatBad:    `Resume format must be "json" or "markdown".`,
	CodeContentUnavailable: "Content is temporarily unavailable.",
	CodeContentPageUnset:   "No workspace page is configured for {{.Kind}}.",
	CodeVitalsInvalid:      "The vitals report is invalid: {{.Reason}}.",
	CodeVitalsUnavailable:  "Vitals collection is not enabled.",
	CodeNotFound:           "Not found.",
}
