package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/insight-hunter/insight-hunter/internal/catalog"
)

func TestRenderPageWrapsContentInShell(t *testing.T) {
	t.Parallel()

	page, err := RenderPage(context.Background(), "Insight Hunter", SignInPage())
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	for _, marker := range []string{
		"<!doctype html>",
		"<title>Insight Hunter</title>",
		`id="signin"`,
		`src="/static/onboard.js"`,
		`src="/static/signin.js"`,
	} {
		if !strings.Contains(page, marker) {
			t.Fatalf("page missing %q", marker)
		}
	}
}

func TestAppShellEscapesTitle(t *testing.T) {
	t.Parallel()

	page, err := RenderPage(context.Background(), `<script>alert("x")</script>`, nil)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if strings.Contains(page, `<script>alert`) {
		t.Fatalf("title was not escaped: %q", page)
	}
}

func TestOnboardStepRendersProgressAndCTA(t *testing.T) {
	t.Parallel()

	step := catalog.Step{
		Slug:     "connect-data",
		Title:    "Connect your data",
		BodyHTML: "<p>Link a <strong>bank feed</strong>.</p>",
		CTALabel: "Connect",
		NextSlug: "business-setup",
	}
	page, err := RenderPage(context.Background(), "Insight Hunter", OnboardStep(step, 2, 11))
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	for _, marker := range []string{
		"Step 2 of 11",
		"<p>Link a <strong>bank feed</strong>.</p>",
		`href="/onboard/business-setup"`,
		`data-step="connect-data"`,
		`data-next="business-setup"`,
		`data-skip="1"`,
		">Connect</a>",
	} {
		if !strings.Contains(page, marker) {
			t.Fatalf("page missing %q:\n%s", marker, page)
		}
	}
}

func TestOnboardStepTerminalOffersFinish(t *testing.T) {
	t.Parallel()

	step := catalog.Step{
		Slug:     "assistant",
		Title:    "Meet your assistant",
		BodyHTML: "<p>Ask anything.</p>",
		CTALabel: "Done",
	}
	page, err := RenderPage(context.Background(), "Insight Hunter", OnboardStep(step, 11, 11))
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(page, `href="/dashboard"`) {
		t.Fatalf("terminal step must point at the dashboard:\n%s", page)
	}
	if !strings.Contains(page, ">Finish</a>") {
		t.Fatalf("terminal step must label the CTA Finish:\n%s", page)
	}
	if strings.Contains(page, `data-skip`) {
		t.Fatalf("terminal step must not offer a skip link:\n%s", page)
	}
}

func TestErrorPageCarriesStatusAndMessage(t *testing.T) {
	t.Parallel()

	page, err := RenderPage(context.Background(), "Insight Hunter", ErrorPage(404, "step not found"))
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	for _, marker := range []string{`id="app-error-state"`, "404", "step not found"} {
		if !strings.Contains(page, marker) {
			t.Fatalf("page missing %q", marker)
		}
	}
}
