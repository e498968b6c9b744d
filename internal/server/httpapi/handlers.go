package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/server/auth"
	"github.com/dmitrijs2005/caet/internal/server/services"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartMem  = 32 << 20
	uploadFieldFiles = "files"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	DOB       string `json:"dob"`
	Phone     string `json:"phone"`
	CSRFToken string `json:"csrf_token"`
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CSRFToken string `json:"csrf_token"`
}

type googleLoginRequest struct {
	Token     string `json:"token"`
	CSRFToken string `json:"csrf_token"`
}

type profileRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	CSRFToken string `json:"csrf_token"`
}

type forgotPasswordRequest struct {
	Email     string `json:"email"`
	CSRFToken string `json:"csrf_token"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("malformed json body")
	}
	return nil
}

// decodeProtected decodes a JSON body and checks its anti-forgery value
// before anything else looks at the fields.
func (s *HTTPServer) decodeProtected(w http.ResponseWriter, r *http.Request, dst any, csrf func() string) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return auth.CheckAntiForgery(csrf(), s.csrfToken)
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeProtected(w, r, &req, func() string { return req.CSRFToken }); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
		Phone:    req.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log(r.Context()).Info(r.Context(), "user registered", "id", u.ID)
	writeJSON(w, http.StatusOK, ok())
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeProtected(w, r, &req, func() string { return req.CSRFToken }); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, ok())
}

// handleGoogleLogin does not check the anti-forgery value.
func (s *HTTPServer) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.ExternalLogin(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, ok())
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, ok())
}

func (s *HTTPServer) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	p, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{envelope: ok(), User: p})
}

func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req profileRequest
	if err := s.decodeProtected(w, r, &req, func() string { return req.CSRFToken }); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.users.UpdateProfile(r.Context(), userID, services.ProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		DOB:   req.DOB,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ok())
}

func (s *HTTPServer) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filesResponse{envelope: ok(), Files: files})
}

func (s *HTTPServer) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := s.decodeProtected(w, r, &req, func() string { return req.CSRFToken }); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.users.ForgotPassword(r.Context(), req.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "recovery email sent"})
}

// handleUpload stores every named part of the "files" field. Parts without a
// filename are skipped. A body that is not multipart has no anti-forgery
// field and is rejected as such.
func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	var csrf string
	if err := r.ParseMultipartForm(maxMultipartMem); err == nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		if v := r.MultipartForm.Value[common.AntiForgeryFieldName]; len(v) > 0 {
			csrf = v[0]
		}
	}
	if err := auth.CheckAntiForgery(csrf, s.csrfToken); err != nil {
		s.writeError(w, r, err)
		return
	}

	parts := r.MultipartForm.File[uploadFieldFiles]
	if len(parts) == 0 {
		s.writeError(w, r, badRequest("no files selected"))
		return
	}

	for _, fh := range parts {
		if fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		err = s.files.Upload(r.Context(), fh.Filename, f)
		_ = f.Close()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, ok())
}

func (s *HTTPServer) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *HTTPServer) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready.PingContext(r.Context()); err != nil {
			s.log(r.Context()).Warn(r.Context(), "readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
