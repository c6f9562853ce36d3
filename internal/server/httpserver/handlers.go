package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
	"github.com/OscarDom1/community-resource-platform/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      *models.PublicUser `json:"user"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type createResourceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type updateResourceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.Register(r.Context(), services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, u)
}

func (s *HTTPServer) loginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: res.User})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	u, err := s.users.Me(r.Context(), sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.Update(r.Context(), sess, r.PathValue("id"), services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) listResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ResourceFilter{OwnerID: q.Get("owner_id")}
	if v := q.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: available must be a boolean", common.ErrValidation))
			return
		}
		filter.Available = &b
	}

	out, err := s.resources.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) getResource(w http.ResponseWriter, r *http.Request) {
	out, err := s.resources.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) createResource(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	var req createResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.resources.Create(r.Context(), sess, services.CreateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *HTTPServer) updateResource(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	var req updateResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.resources.Update(r.Context(), sess, r.PathValue("id"), models.ResourcePatch{
		Title:       req.Title,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) deleteResource(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	if err := s.resources.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
