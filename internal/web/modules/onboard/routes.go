package onboard

import (
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, s service) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", s.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Onboard, s.handleOnboardIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.OnboardStep, s.handleOnboardStep)
	mux.HandleFunc(http.MethodGet+" "+routepath.SignIn, s.handleSignInPage)

	mux.HandleFunc(http.MethodPost+" "+routepath.APIOnboardComplete, s.handleCompleteStep)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIOnboardComplete, httpx.MethodNotAllowed(http.MethodPost))
}
