// Package authapi serves the demo credential sign-in and sign-out API.
package authapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/insight-hunter/insight-hunter/internal/auth/token"
	"github.com/insight-hunter/insight-hunter/internal/onboarding"
	"github.com/insight-hunter/insight-hunter/internal/session"
	module "github.com/insight-hunter/insight-hunter/internal/web/module"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/sessioncookie"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
)

type service struct {
	sessions  session.Store
	sequencer *onboarding.Sequencer
	tokens    *token.Signer
}

// Service is the auth API web module.
type Service struct {
	svc service
}

// New builds the auth module from shared dependencies.
func New(deps module.Dependencies) *Service {
	return &Service{svc: service{
		sessions:  deps.Sessions,
		sequencer: deps.Sequencer,
		tokens:    deps.Tokens,
	}}
}

// ID identifies the module in composition.
func (s *Service) ID() string { return "authapi" }

// Register mounts the module's routes.
func (s *Service) Register(mux *http.ServeMux) {
	registerRoutes(mux, s.svc)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts both the JSON body of API clients and the
// multipart form the sign-in page submits.
func readCredentials(r *http.Request) credentials {
	if r == nil {
		return credentials{}
	}
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var creds credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		creds.Email = strings.TrimSpace(creds.Email)
		return creds
	}
	if strings.Contains(contentType, "multipart/form-data") {
		_ = r.ParseMultipartForm(1 << 20)
	} else {
		_ = r.ParseForm()
	}
	return credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
}

// handleSignIn accepts any non-empty email and password. Real credential
// checks live outside this demo surface.
func (s service) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	creds := readCredentials(r)
	if creds.Email == "" || creds.Password == "" {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sid, _ := module.ResolveSessionID(w, r)
	if err := s.sessions.SetAuthenticated(ctx, sid, true); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "session store unavailable")
		return
	}
	if _, err := s.sequencer.MarkComplete(ctx, sid, s.sequencer.Sequence().Entry()); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "session store unavailable")
		return
	}

	payload := map[string]any{"ok": true, "redirect": routepath.Onboard}
	if s.tokens != nil {
		if signed, err := s.tokens.Sign(creds.Email, "user"); err == nil {
			payload["token"] = signed
		}
	}
	_ = httpx.WriteJSON(w, http.StatusOK, payload)
}

// handleSignOut clears auth and onboarding progress for the session.
func (s service) handleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	if sid, ok := sessioncookie.Read(r); ok {
		if err := s.sessions.Clear(ctx, sid); err != nil {
			_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
	}
	sessioncookie.Clear(w, r)
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "redirect": routepath.SignIn})
}
