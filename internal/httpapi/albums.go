package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"albumapi/internal/app/albums"
	"albumapi/internal/store"
)

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	list, err := s.albums.List(r.Context())
	if err != nil {
		s.internalError(w, r, err, "list albums")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := albumIDParam(w, r, "id")
	if !ok {
		return
	}

	album, err := s.albums.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "album not found"})
			return
		}
		s.internalError(w, r, err, "get album")
		return
	}

	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req albums.Input
	if !s.decodeValid(w, r, &req) {
		return
	}

	created, err := s.albums.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrAlbumExists) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, r, err, "create album")
		return
	}

	w.Header().Set("Location", "/api/Album/"+created.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := albumIDParam(w, r, "id")
	if !ok {
		return
	}

	var req albums.Input
	if !s.decodeValid(w, r, &req) {
		return
	}

	if err := s.albums.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, store.ErrAlbumNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "album not found"})
		case errors.Is(err, store.ErrAlbumExists):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			s.internalError(w, r, err, "update album")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := albumIDParam(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.albums.Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "album not found"})
			return
		}
		s.internalError(w, r, err, "get album")
		return
	}

	if err := s.albums.Delete(r.Context(), id); err != nil {
		s.internalError(w, r, err, "delete album")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func albumIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return uuid.Nil, false
	}
	return id, true
}
