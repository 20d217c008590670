package http

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salesboard/internal/platform/config"
	perr "salesboard/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func serve(t *testing.T, r Router, method, path string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestRouteAndEnvelope(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Use(chimw.RequestID)
	r.Route("/dashboard", func(d Router) {
		d.Get("/overview", Handle(func(*http.Request) Response {
			return OK(map[string]int{"rows": 3})
		}))
		d.Post("/report", Handle(func(*http.Request) Response {
			return Error(perr.WithField(perr.InvalidArgf("end before start"), "trend_window"))
		}))
	})

	rec, env := serve(t, r, http.MethodGet, "/dashboard/overview")
	if rec.Code != 200 || env.StatusCode != 200 || env.Status != "OK" || env.RequestID == "" {
		t.Fatalf("ok envelope: %d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type: %s", ct)
	}

	rec, env = serve(t, r, http.MethodPost, "/dashboard/report")
	if rec.Code != http.StatusUnprocessableEntity || env.Field != "trend_window" || env.Code != perr.ErrorCodeInvalidArgument {
		t.Fatalf("error envelope: %d %+v", rec.Code, env)
	}
	if env.Data != nil {
		t.Fatalf("error envelope should carry no data")
	}
}

func TestForeignErrorIs500(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Get("/x", Handle(func(*http.Request) Response { return Error(stderrs.New("boom")) }))
	rec, env := serve(t, r, http.MethodGet, "/x")
	if rec.Code != 500 || env.Error != "boom" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 200, map[string]float64{"sales": math.NaN()})
	if rec.Code != 500 {
		t.Fatalf("NaN payload should become a 500, got %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	on := AdaptChi(chi.NewRouter())
	MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != 200 {
		t.Fatalf("pprof should be mounted, got %d", rec.Code)
	}

	off := AdaptChi(chi.NewRouter())
	MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != 404 {
		t.Fatalf("pprof should be absent, got %d", rec.Code)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "127.0.0.1:0")
	s := NewServer(config.New().Prefix("CORE_API_"))
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr: %s", s.Addr())
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
