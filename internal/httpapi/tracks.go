package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"albumapi/internal/app/tracks"
	"albumapi/internal/store"
)

func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	albumID, ok := albumIDParam(w, r, "albumId")
	if !ok {
		return
	}

	var req tracks.Input
	if !s.decodeValid(w, r, &req) {
		return
	}

	created, err := s.tracks.Create(r.Context(), albumID, req)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("Album with ID %s not found.", albumID)})
			return
		}
		s.internalError(w, r, err, "create track")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/albums/%s/tracks/%d", albumID, created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	albumID, ok := albumIDParam(w, r, "albumId")
	if !ok {
		return
	}
	id, ok := trackIDParam(w, r)
	if !ok {
		return
	}

	track, err := s.tracks.Get(r.Context(), albumID, id)
	if err != nil {
		if errors.Is(err, store.ErrTrackNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "track not found"})
			return
		}
		s.internalError(w, r, err, "get track")
		return
	}

	writeJSON(w, http.StatusOK, track)
}

func (s *Server) handleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	albumID, ok := albumIDParam(w, r, "albumId")
	if !ok {
		return
	}
	id, ok := trackIDParam(w, r)
	if !ok {
		return
	}

	var req tracks.Input
	if !s.decodeValid(w, r, &req) {
		return
	}

	if err := s.tracks.Update(r.Context(), albumID, id, req); err != nil {
		if errors.Is(err, store.ErrTrackNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "track not found"})
			return
		}
		s.internalError(w, r, err, "update track")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	albumID, ok := albumIDParam(w, r, "albumId")
	if !ok {
		return
	}
	id, ok := trackIDParam(w, r)
	if !ok {
		return
	}

	if err := s.tracks.Delete(r.Context(), albumID, id); err != nil {
		if errors.Is(err, store.ErrTrackNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "track not found"})
			return
		}
		s.internalError(w, r, err, "delete track")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// trackIDParam parses the track id. Ids outside the int4 range of the
// tracks.id column cannot exist, so they answer 404 rather than 400.
func trackIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "track not found"})
			return 0, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid track id"})
		return 0, false
	}
	return id, true
}
