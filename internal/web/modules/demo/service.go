// Package demo serves the health check, canned demo data and the
// token-protected report creation API.
package demo

import (
	"net/http"

	"github.com/insight-hunter/insight-hunter/internal/auth/token"
	module "github.com/insight-hunter/insight-hunter/internal/web/module"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
)

const serviceName = "insight-hunter"

type service struct {
	tokens *token.Signer
}

// Service is the demo data web module.
type Service struct {
	svc service
}

// New builds the demo module from shared dependencies.
func New(deps module.Dependencies) *Service {
	return &Service{svc: service{tokens: deps.Tokens}}
}

// ID identifies the module in composition.
func (s *Service) ID() string { return "demo" }

// Register mounts the module's routes.
func (s *Service) Register(mux *http.ServeMux) {
	registerRoutes(mux, s.svc)
}

type statCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type forecastPoint struct {
	Month      string `json:"month"`
	CashIn     int    `json:"cashIn"`
	CashOut    int    `json:"cashOut"`
	NetCash    int    `json:"netCash"`
	EOMBalance int    `json:"eomBalance"`
}

func (s service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": serviceName})
}

func (s service) handleSummary(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, []statCard{
		{Label: "MRR", Value: "$6,400"},
		{Label: "Active Workspaces", Value: "41"},
		{Label: "Reports / wk", Value: "183"},
	})
}

func (s service) handleForecast(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, []forecastPoint{
		{Month: "Sep", CashIn: 28000, CashOut: 21000, NetCash: 7000, EOMBalance: 42000},
		{Month: "Oct", CashIn: 29500, CashOut: 21900, NetCash: 7600, EOMBalance: 49600},
	})
}
