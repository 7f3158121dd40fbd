// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/auth/token"
	"github.com/insight-hunter/insight-hunter/internal/catalog"
	"github.com/insight-hunter/insight-hunter/internal/onboarding"
	"github.com/insight-hunter/insight-hunter/internal/rendercache"
	"github.com/insight-hunter/insight-hunter/internal/session"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/sessioncookie"
)

// Dependencies carries the shared collaborators injected into modules.
type Dependencies struct {
	Sessions  session.Store
	Sequencer *onboarding.Sequencer
	Catalog   catalog.Catalog
	Cache     *rendercache.Cache
	Tokens    *token.Signer
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Register(mux *http.ServeMux)
}

// ResolveSessionID returns the request's session id, minting one and
// setting the cookie when the browser arrives without it.
func ResolveSessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if sid, ok := sessioncookie.Read(r); ok {
		return sid, false
	}
	sid := session.NewID()
	sessioncookie.Write(w, r, sid)
	return sid, true
}
