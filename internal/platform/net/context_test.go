package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestID(t *testing.T) {
	if RequestID(context.Background()) != "" {
		t.Fatalf("empty context should have no id")
	}
	if ctx := WithRequestID(context.Background(), ""); RequestID(ctx) != "" {
		t.Fatalf("blank id should not be stored")
	}
	if got := RequestID(WithRequestID(context.Background(), "req-1")); got != "req-1" {
		t.Fatalf("got %q", got)
	}
}

func TestRequestIDFromMiddleware(t *testing.T) {
	var seen string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "from-proxy")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "from-proxy" {
		t.Fatalf("got %q", seen)
	}
}
