package server

import (
	"net/http"
	"strings"

	apperrors "github.com/atelierfolio/atelier/internal/platform/errors"
	"github.com/atelierfolio/atelier/internal/scene/room"
)

type roomsResponse struct {
	Rooms []room.Description `json:"rooms"`
	Order []room.ID          `json:"order"`
	Entry room.ID            `json:"entry"`
}

func (h handlers) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, roomsResponse{
		Rooms: room.DescribeAll(),
		Order: room.Order(),
		Entry: room.Entry,
	})
}

func (h handlers) handleRoom(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, ok := room.Resolve(raw)
	if !ok {
		writeError(w, r, errRoomUnknown(raw))
		return
	}
	d, _ := room.Describe(id)
	writeJSON(w, http.StatusOK, d)
}

func errRoomUnknown(raw string) error {
	return apperrors.WithMetadata(apperrors.CodeRoomUnknown, "room not registered", map[string]string{"Room": raw})
}
