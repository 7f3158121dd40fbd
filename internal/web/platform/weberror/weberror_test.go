package weberror

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/insight-hunter/insight-hunter/internal/web/platform/errors"
)

func TestWritePageErrorRendersErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/onboard/missing", nil)
	rr := httptest.NewRecorder()
	WritePageError(rr, req, apperrors.E(apperrors.KindNotFound, "step not found"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := rr.Body.String(); !strings.Contains(body, `id="app-error-state"`) {
		t.Fatalf("body missing error state marker: %q", body)
	}
}

func TestWritePageErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/signin", nil)
	rr := httptest.NewRecorder()
	WritePageError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if got := rr.Header().Get("Content-Type"); strings.Contains(got, "text/html") {
		t.Fatalf("content-type = %q, want plain text", got)
	}
}

func TestWritePageErrorHidesInternalDetail(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/onboard/signin", nil)
	rr := httptest.NewRecorder()
	WritePageError(rr, req, apperrors.E(apperrors.KindUnavailable, "sqlite file locked"))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if body := rr.Body.String(); strings.Contains(body, "sqlite") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestShouldRenderErrorPage(t *testing.T) {
	t.Parallel()

	cases := map[int]bool{
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
		http.StatusFound:               false,
	}
	for status, want := range cases {
		if got := ShouldRenderErrorPage(status); got != want {
			t.Fatalf("ShouldRenderErrorPage(%d) = %t, want %t", status, got, want)
		}
	}
}
