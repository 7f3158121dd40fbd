package demo

import (
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, s service) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.APIHealth, s.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIDemoSummary, s.handleSummary)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIDemoForecast, s.handleForecast)

	mux.HandleFunc(http.MethodPost+" "+routepath.APIReports, s.handleCreateReport)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIReports, httpx.MethodNotAllowed(http.MethodPost))
}
