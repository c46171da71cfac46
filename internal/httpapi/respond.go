// internal/httpapi/respond.go
package httpapi

import (
	"encoding/json"
	"net/http"

	swipeerrors "swipeshop-backend/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses and emits the
// uniform {"error": message} body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := swipeerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
	}
	writeJSON(w, status, map[string]string{"error": swipeerrors.Message(err)})
}

func (s *Server) writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
