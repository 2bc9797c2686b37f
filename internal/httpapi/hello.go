package httpapi

import (
	"net/http"

	"albumapi/internal/logging"
)

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	logger := logging.FromContext(r.Context())

	logger.Info().Str("name", name).Msg("Received a greeting request")
	greeting := s.greetings.Greet(name)
	logger.Info().Str("greeting", greeting.Message).Msg("Generated greeting")

	writeJSON(w, http.StatusOK, greeting)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	logging.FromContext(r.Context()).Info().Msg("GET /api/test called")
	writeText(w, http.StatusOK, "TestController is alive!")
}

func (s *Server) handleTestTime(w http.ResponseWriter, r *http.Request) {
	msg := "Test -- The date now is: " + s.now().Format("2006-01-02 15:04:05")
	logging.FromContext(r.Context()).Info().Str("message", msg).Msg("GET /api/test/time called")
	writeText(w, http.StatusOK, msg)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
