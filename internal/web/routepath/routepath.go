// Package routepath centralizes route patterns for the web surface.
package routepath

const (
	Root = "/"

	Onboard     = "/onboard"
	OnboardStep = "/onboard/{slug}"
	SignIn      = "/signin"

	APIOnboardComplete = "/api/onboard/complete/{slug}"
	APIAuthSignIn      = "/api/auth/signin"
	APIAuthSignOut     = "/api/auth/signout"

	APIHealth       = "/api/health"
	APIDemoSummary  = "/api/demo/summary"
	APIDemoForecast = "/api/demo/forecast"
	APIReports      = "/api/reports"

	StaticPrefix = "/static/"
)

// OnboardStepFor returns the page path for a step slug.
func OnboardStepFor(slug string) string {
	return Onboard + "/" + slug
}
