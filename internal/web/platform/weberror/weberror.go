// Package weberror renders shared error responses for web pages.
package weberror

import (
	"net/http"

	apperrors "github.com/insight-hunter/insight-hunter/internal/web/platform/errors"
	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
	"github.com/insight-hunter/insight-hunter/internal/web/templates"
)

// ShouldRenderErrorPage reports whether status should use full-page error UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// WritePageError writes a full-page error response for page routes.
// Anything below the error-page threshold degrades to plain text.
func WritePageError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	message := apperrors.PublicMessage(err)
	if !ShouldRenderErrorPage(statusCode) {
		http.Error(w, message, statusCode)
		return
	}
	page, renderErr := templates.RenderPage(httpx.RequestContext(r), "Insight Hunter", templates.ErrorPage(statusCode, message))
	if renderErr != nil {
		http.Error(w, message, statusCode)
		return
	}
	_ = httpx.WriteHTML(w, statusCode, page)
}
