package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"albumapi/internal/app/albums"
	"albumapi/internal/app/greeting"
	"albumapi/internal/app/tracks"
	"albumapi/internal/logging"
)

// AlbumService exposes album-specific workflows.
type AlbumService interface {
	Create(ctx context.Context, in albums.Input) (albums.Album, error)
	Get(ctx context.Context, id uuid.UUID) (albums.Album, error)
	List(ctx context.Context) ([]albums.Album, error)
	Update(ctx context.Context, id uuid.UUID, in albums.Input) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrackService coordinates track-level operations under an album.
type TrackService interface {
	Create(ctx context.Context, albumID uuid.UUID, in tracks.Input) (tracks.Track, error)
	Get(ctx context.Context, albumID uuid.UUID, id int64) (tracks.Track, error)
	Update(ctx context.Context, albumID uuid.UUID, id int64, in tracks.Input) error
	Delete(ctx context.Context, albumID uuid.UUID, id int64) error
}

// GreetingService produces the hello endpoint payload.
type GreetingService interface {
	Greet(name string) greeting.Greeting
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	albums    AlbumService
	tracks    TrackService
	greetings GreetingService

	validate *validator.Validate
	now      func() time.Time
}

// New configures a Server with the given services.
func New(albums AlbumService, tracks TrackService, greetings GreetingService) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Server{
		albums:    albums,
		tracks:    tracks,
		greetings: greetings,
		validate:  v,
		now:       time.Now,
	}
}

// Routes exposes the HTTP handlers for albums, tracks and greetings. Paths
// match without regard to case or a trailing slash.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/album", s.handleListAlbums).Methods(http.MethodGet)
	router.HandleFunc("/api/album", s.handleCreateAlbum).Methods(http.MethodPost)
	router.HandleFunc("/api/album/{id}", s.handleGetAlbum).Methods(http.MethodGet)
	router.HandleFunc("/api/album/{id}", s.handleUpdateAlbum).Methods(http.MethodPut)
	router.HandleFunc("/api/album/{id}", s.handleDeleteAlbum).Methods(http.MethodDelete)

	router.HandleFunc("/api/albums/{albumId}/tracks", s.handleCreateTrack).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{albumId}/tracks/{id}", s.handleGetTrack).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{albumId}/tracks/{id}", s.handleUpdateTrack).Methods(http.MethodPut)
	router.HandleFunc("/api/albums/{albumId}/tracks/{id}", s.handleDeleteTrack).Methods(http.MethodDelete)

	router.HandleFunc("/api/hello", s.handleHello).Methods(http.MethodGet)
	router.HandleFunc("/api/test", s.handleTest).Methods(http.MethodGet)
	router.HandleFunc("/api/test/time", s.handleTestTime).Methods(http.MethodGet)

	return foldPath(router)
}

// foldPath lowercases the request path and drops a trailing slash before
// routing. Album ids are UUIDs and track ids are digits, so neither loses
// meaning.
func foldPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.ToLower(r.URL.Path)
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		if path != r.URL.Path {
			u := *r.URL
			u.Path = path
			u.RawPath = ""
			r2 := r.Clone(r.Context())
			r2.URL = &u
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// decodeValid decodes the JSON body into dst and validates it, writing a 400
// response and returning false on failure.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			fields[fe.Field()] = rule
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return false
	}

	return true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
