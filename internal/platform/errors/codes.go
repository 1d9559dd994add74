// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Scene errors
	CodeRoomUnknown     Code = "ROOM_UNKNOWN"
	CodeMoodSourceBad   Code = "MOOD_SOURCE_INVALID"
	CodeAudioPosition   Code = "AUDIO_POSITION_INVALID"
	CodeFrameInvalid    Code = "FRAME_INVALID"
	CodeFrameRateLimit  Code = "FRAME_RATE_LIMITED"
	CodeResumeFormatBad Code = "RESUME_FORMAT_INVALID"

	// Content errors
	CodeContentUnavailable Code = "CONTENT_UNAVAILABLE"
	CodeContentPageUnset   Code = "CONTENT_PAGE_UNSET"

	// Vitals errors
	CodeVitalsInvalid     Code = "VITALS_INVALID"
	CodeVitalsUnavailable Code = "VITALS_UNAVAILABLE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeMoodSourceBad,
		CodeAudioPosition,
		CodeFrameInvalid,
		CodeResumeFormatBad,
		CodeVitalsInvalid:
		return codes.InvalidArgument

	// NotFound - entity doesn't exist
	case CodeRoomUnknown,
		CodeNotFound:
		return codes.NotFound

	// FailedPrecondition - configuration doesn't allow operation
	case CodeContentPageUnset:
		return codes.FailedPrecondition

	// ResourceExhausted - caller is over a limit
	case CodeFrameRateLimit:
		return codes.ResourceExhausted

	// Unavailable - dependency can't serve right now
	case CodeContentUnavailable,
		CodeVitalsUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}

// HTTPStatus maps a gRPC status code to the HTTP status served for it.
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
