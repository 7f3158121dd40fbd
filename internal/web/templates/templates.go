// Package templates renders the Insight Hunter web pages.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/insight-hunter/insight-hunter/internal/catalog"
)

// Version identifies the current markup revision. Cached pages are
// keyed by it, so bump it whenever rendered output changes.
const Version = "v1"

const shellStyle = `:root{ --fg:#e8f1ef; --bg:#050809; --sub:#a8b8b5; --stroke:#2b3b3a; --btn:#0f1a1a; --accent:#1fd1b5; }
body{ margin:0; background:var(--bg); color:var(--fg); font-family: ui-sans-serif, -apple-system, system-ui, Segoe UI, Roboto, Inter, Arial, sans-serif; }
main{ padding:24px 16px; max-width:640px; margin:0 auto; }
.cta{ display:inline-block; margin-top:16px; padding:14px 16px; border-radius:14px; border:1px solid var(--stroke); background:var(--btn); color:var(--fg); font-weight:600; text-decoration:none; }
.sub{ color:var(--sub) }
.progress{ height:6px; border-radius:999px; background:rgba(255,255,255,.12); overflow:hidden; margin:12px 0 6px; }
.progress > i{ display:block; height:6px; background:var(--accent); }
.row{ display:flex; gap:12px; margin-top:16px; }
.btn-outline{ padding:12px 14px; border-radius:12px; border:1px solid var(--stroke); background:transparent; color:var(--fg); text-decoration:none; font-weight:600; display:inline-block; }
.field{ padding:14px 12px; border-radius:12px; border:1px solid var(--stroke); background:var(--btn); color:var(--fg); }
.alert{ display:none; margin-top:8px; color:#ffd0d0; }`

// AppShell wraps page content in the shared document shell.
func AppShell(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width,initial-scale=1,viewport-fit=cover"/><title>%s</title><style>%s</style></head><body>`,
			html.EscapeString(title), shellStyle); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<script type="module" src="/static/onboard.js"></script><script type="module" src="/static/signin.js"></script></body></html>`)
		return err
	})
}

// OnboardStep renders one onboarding step with its progress bar and CTA.
// position is 1-based; the step body is trusted catalog HTML.
func OnboardStep(step catalog.Step, position, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if total < 1 {
			total = 1
		}
		if position < 1 {
			position = 1
		}
		pct := position * 100 / total
		if _, err := fmt.Fprintf(w,
			`<main><div class="progress" aria-label="Progress %d%%"><i style="width:%d%%"></i></div><header style="margin-bottom:8px"><h1 style="font-size:28px;margin:0">%s</h1><p class="sub" style="margin:6px 0 0">Step %d of %d</p></header><section>`,
			pct, pct, html.EscapeString(step.Title), position, total); err != nil {
			return err
		}
		if err := templ.Raw(step.BodyHTML).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section><div class="row">`); err != nil {
			return err
		}
		ctaHref := "/dashboard"
		ctaLabel := "Finish"
		if step.NextSlug != "" {
			ctaHref = "/onboard/" + step.NextSlug
			ctaLabel = step.CTALabel
			if _, err := fmt.Fprintf(w,
				`<a class="btn-outline" href="%s" data-step="%s" data-skip="1">Skip</a>`,
				html.EscapeString(ctaHref), html.EscapeString(step.Slug)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<a class="cta" href="%s" data-step="%s" data-next="%s">%s</a></div></main>`,
			html.EscapeString(ctaHref), html.EscapeString(step.Slug), html.EscapeString(step.NextSlug), html.EscapeString(ctaLabel))
		return err
	})
}

// SignInPage renders the demo credential form.
func SignInPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<main><h1 style="font-size:28px;margin-bottom:8px">Sign in</h1><p class="sub" style="margin-bottom:16px">Email + password (demo). Replace with your provider later.</p><form id="signin" style="display:grid;gap:12px"><input class="field" name="email" inputmode="email" placeholder="you@company.com" required/><input class="field" name="password" type="password" placeholder="Password" required/><button class="cta" type="submit">Continue</button></form><div id="err" class="alert" role="alert"></div></main>`)
		return err
	})
}

// ErrorPage renders a minimal full-page error.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<main id="app-error-state"><h1 style="font-size:28px;margin-bottom:8px">%d</h1><p class="sub">%s</p><a class="cta" href="/onboard">Back to onboarding</a></main>`,
			status, html.EscapeString(message))
		return err
	})
}

// RenderPage renders a component inside the app shell and returns the markup.
func RenderPage(ctx context.Context, title string, content templ.Component) (string, error) {
	page, err := templ.ToGoHTML(ctx, AppShell(title, content))
	if err != nil {
		return "", err
	}
	return string(page), nil
}
