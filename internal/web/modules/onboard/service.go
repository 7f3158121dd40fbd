// Package onboard serves the onboarding step pages and completion API.
package onboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/catalog"
	"github.com/insight-hunter/insight-hunter/internal/onboarding"
	"github.com/insight-hunter/insight-hunter/internal/rendercache"
	module "github.com/insight-hunter/insight-hunter/internal/web/module"
	apperrors "github.com/insight-hunter/insight-hunter/internal/web/platform/errors"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/weberror"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
	"github.com/insight-hunter/insight-hunter/internal/web/templates"
)

const pageTitle = "Insight Hunter"

type service struct {
	sequencer *onboarding.Sequencer
	catalog   catalog.Catalog
	cache     *rendercache.Cache
}

// Service is the onboarding web module.
type Service struct {
	svc service
}

// New builds the onboarding module from shared dependencies.
func New(deps module.Dependencies) *Service {
	return &Service{svc: service{
		sequencer: deps.Sequencer,
		catalog:   deps.Catalog,
		cache:     deps.Cache,
	}}
}

// ID identifies the module in composition.
func (s *Service) ID() string { return "onboard" }

// Register mounts the module's routes.
func (s *Service) Register(mux *http.ServeMux) {
	registerRoutes(mux, s.svc)
}

func (s service) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Onboard)
}

// handleOnboardIndex sends the session to its computed next step.
func (s service) handleOnboardIndex(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	sid, _ := module.ResolveSessionID(w, r)
	next, err := s.sequencer.Next(ctx, sid)
	if err != nil {
		weberror.WritePageError(w, r, apperrors.E(apperrors.KindUnavailable, "session store unavailable"))
		return
	}
	httpx.WriteRedirect(w, r, routepath.OnboardStepFor(next))
}

func (s service) handleOnboardStep(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	slug := r.PathValue("slug")
	if !s.sequencer.Sequence().Contains(slug) {
		weberror.WritePageError(w, r, apperrors.E(apperrors.KindNotFound, "unknown onboarding step"))
		return
	}

	sid, _ := module.ResolveSessionID(w, r)
	access, err := s.sequencer.AuthorizeStepAccess(ctx, sid, slug)
	if err != nil {
		weberror.WritePageError(w, r, apperrors.E(apperrors.KindUnavailable, "session store unavailable"))
		return
	}
	if !access.Allowed {
		httpx.WriteRedirect(w, r, routepath.OnboardStepFor(access.Redirect))
		return
	}

	key := rendercache.Key{Slug: slug, TemplateVersion: templates.Version}
	page, err := s.cache.Serve(ctx, key, func(ctx context.Context) ([]byte, error) {
		return s.renderStep(ctx, slug)
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			weberror.WritePageError(w, r, apperrors.E(apperrors.KindNotFound, "unknown onboarding step"))
			return
		}
		weberror.WritePageError(w, r, apperrors.E(apperrors.KindUnavailable, "step content unavailable"))
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, string(page))
}

func (s service) renderStep(ctx context.Context, slug string) ([]byte, error) {
	step, err := s.catalog.Step(ctx, slug)
	if err != nil {
		return nil, err
	}
	seq := s.sequencer.Sequence()
	position := 1
	if idx, ok := seq.Index(slug); ok {
		position = idx + 1
	}
	page, err := templates.RenderPage(ctx, pageTitle, templates.OnboardStep(step, position, seq.Len()))
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}

func (s service) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	page, err := templates.RenderPage(httpx.RequestContext(r), pageTitle, templates.SignInPage())
	if err != nil {
		weberror.WritePageError(w, r, apperrors.E(apperrors.KindUnknown, "render failed"))
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, page)
}

func (s service) handleCompleteStep(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	slug := r.PathValue("slug")
	sid, _ := module.ResolveSessionID(w, r)

	next, err := s.sequencer.MarkComplete(ctx, sid, slug)
	switch {
	case err == nil:
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "next": next})
	case errors.Is(err, onboarding.ErrUnauthorized):
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "sign in to continue onboarding")
	case errors.Is(err, onboarding.ErrUnknownStep):
		_ = httpx.WriteJSONError(w, http.StatusNotFound, "unknown onboarding step")
	default:
		httpx.WriteError(w, apperrors.E(apperrors.KindUnavailable, "session store unavailable"))
	}
}
