package transport

import (
	"net/http"

	"github.com/rpggio/cadence/internal/domain/account"
)

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerPayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sess, err := s.svc.Accounts.Register(r.Context(), account.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginPayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sess, err := s.svc.Accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if !s.authEnabled {
		writeJSON(w, http.StatusOK, account.User{ID: s.localUserID, Name: "Local user", Role: account.RoleAdmin})
		return
	}
	user, err := s.svc.Accounts.Me(r.Context(), s.userID(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.authEnabled {
		if err := s.svc.Accounts.Logout(r.Context(), BearerToken(r.Header.Get("Authorization"))); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
