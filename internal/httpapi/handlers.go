// internal/httpapi/handlers.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	swipeerrors "swipeshop-backend/internal/common/errors"
	"swipeshop-backend/internal/models"
)

type userPayload struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeValidationError(w, "invalid JSON body")
		return
	}

	result, err := s.searcher.Search(r.Context(), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(mux.Vars(r)["username"])
	if username == "" {
		s.writeValidationError(w, "username is required")
		return
	}

	available, err := s.store.CheckUsername(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available": available,
		"username":  username,
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		s.writeValidationError(w, "name and username are required")
		return
	}

	user, err := s.store.CreateUser(r.Context(), payload.Name, payload.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		s.writeValidationError(w, "name and username are required")
		return
	}

	user, err := s.store.UpdateUser(r.Context(), mux.Vars(r)["userId"], payload.Name, payload.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (s *Server) handleSaveSurvey(w http.ResponseWriter, r *http.Request) {
	var profile models.PersonalizationProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeValidationError(w, "invalid JSON body")
		return
	}

	record, err := s.store.SaveSurvey(r.Context(), mux.Vars(r)["userId"], &profile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"survey":  record,
	})
}

func (s *Server) handleGetSurvey(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.GetSurvey(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"survey": record})
}

// handleLogin resolves a username to its user record plus survey, if one
// exists. Usernames are identifiers, not credentials.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		s.writeValidationError(w, "username is required")
		return
	}

	user, err := s.store.LookupByUsername(r.Context(), payload.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var survey *models.SurveyRecord
	if record, err := s.store.GetSurvey(r.Context(), user.ID); err == nil {
		survey = record
	} else if swipeerrors.Code(err) != swipeerrors.ErrCodeNotFound {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"survey": survey,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
