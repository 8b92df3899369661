package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/health", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[healthResponse](t, rec); got.Status != "ok" || got.Database != "ok" {
		t.Fatalf("unexpected health %+v", got)
	}
}

func TestMetricsExposed(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected default collectors in metrics output")
	}
}
