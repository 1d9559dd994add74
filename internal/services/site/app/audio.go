package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/scene/chime"
	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

func (h handlers) handleAudio(w http.ResponseWriter, r *http.Request) {
	file := strings.TrimSpace(r.PathValue("file"))
	name, ok := strings.CutSuffix(file, ".wav")
	if !ok {
		writeError(w, r, apperrors.New(apperrors.CodeNotFound, "audio file must be a .wav"))
		return
	}
	id := room.ID(strings.ToLower(name))
	if !id.Valid() {
		writeError(w, r, errRoomUnknown(name))
		return
	}
	listener, err := listenerFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	wav, err := chime.Render(chime.Tone{Room: id, Listener: listener})
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "render chime", err))
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

// listenerFromQuery reads an optional x/y/z listener position. Absent axes
// are zero; no axes at all means no listener.
func listenerFromQuery(r *http.Request) (*vmath.Vec3, error) {
	query := r.URL.Query()
	var pos vmath.Vec3
	present := false
	for _, axis := range []struct {
		name string
		dst  *float64
	}{{"x", &pos.X}, {"y", &pos.Y}, {"z", &pos.Z}} {
		raw := strings.TrimSpace(query.Get(axis.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = strconv.ErrSyntax
		}
		if err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeAudioPosition, "listener axis is not numeric", map[string]string{"Axis": axis.name}, err)
		}
		*axis.dst = v
		present = true
	}
	if !present {
		return nil, nil
	}
	return &pos, nil
}
