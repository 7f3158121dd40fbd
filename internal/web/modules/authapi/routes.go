package authapi

import (
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, s service) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIAuthSignIn, s.handleSignIn)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIAuthSignIn, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodPost+" "+routepath.APIAuthSignOut, s.handleSignOut)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIAuthSignOut, httpx.MethodNotAllowed(http.MethodPost))
}
