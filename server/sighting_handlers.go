package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/rs/zerolog"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgUnreachable      = "Could not reach the server. Try again later."

	maxSightingBody = 1 << 20
	maxScanUpload   = 20 << 20
)

// SubmitSightingHandler validates a sighting and forwards it to the backend,
// relaying the backend's answer.
func (s *Server) SubmitSightingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSightingBody))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid body")
			return
		}

		created, err := s.actions.SubmitSighting(r.Context(), sessionToken(r.Context()), body)
		if err != nil {
			actionErr := apperrors.AsActionError(err)
			if actionErr.Body != nil {
				writeRawJSON(w, actionErr.Status, actionErr.Body)
				return
			}
			writeJSONError(w, actionErr.Status, actionErr.Message)
			return
		}
		writeRawJSON(w, http.StatusOK, created)
	}
}

// ScanAnalyzeHandler streams an image upload to the backend's classifier and
// relays the response unchanged.
func (s *Server) ScanAnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r.Context())
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		body := http.MaxBytesReader(w, r.Body, maxScanUpload)
		resp, err := s.backend.Forward(r.Context(), token, http.MethodPost, backend.PathScan, r.Header.Get("Content-Type"), body)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("scan forward failed")
			writeJSONError(w, http.StatusServiceUnavailable, msgUnreachable)
			return
		}
		defer resp.Body.Close()

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("scan response relay interrupted")
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
