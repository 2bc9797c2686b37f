package main

import (
	"net/http"

	"albumapi/internal/app/albums"
	"albumapi/internal/app/greeting"
	"albumapi/internal/app/tracks"
	"albumapi/internal/config"
	"albumapi/internal/http/middleware"
	"albumapi/internal/httpapi"
	"albumapi/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) http.Handler {
	albumSvc := albums.New(dataStore)
	trackSvc := tracks.New(dataStore)
	greetingSvc := greeting.New()

	return chain(
		httpapi.New(albumSvc, trackSvc, greetingSvc).Routes(),
		middleware.Recovery(),
		middleware.RequestLogging(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RequireWriteToken(cfg.Security.JWTSecret),
	)
}

// chain wraps h so the first middleware is the outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
