package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "salesboard/internal/platform/errors"
	phttp "salesboard/internal/platform/net/http"
)

type windowIn struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
}

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(mux), CommonStack(), func(api Router) {
		Get(api, "/years", func(*http.Request) (any, error) {
			return []int{2023, 2024}, nil
		})
		Get(api, "/missing", func(*http.Request) (any, error) {
			return nil, perr.New(perr.ErrorCodeNotFound, "no such station")
		})
		Get(api, "/accepted", func(*http.Request) (any, error) {
			return phttp.Response{Status: http.StatusAccepted, Body: "queued"}, nil
		})
		PostJSON(api, "/window", func(_ *http.Request, in windowIn) (any, error) {
			return in.Start, nil
		})
	})
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env phttp.Envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: bad envelope %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHandlers(t *testing.T) {
	h := newAPI(t)

	cases := []struct {
		name, method, path, body string
		status                   int
		field                    string
	}{
		{"plain data", http.MethodGet, "/api/v1/years", "", http.StatusOK, ""},
		{"coded error", http.MethodGet, "/api/v1/missing", "", http.StatusNotFound, ""},
		{"explicit response", http.MethodGet, "/api/v1/accepted", "", http.StatusAccepted, ""},
		{"bound body", http.MethodPost, "/api/v1/window", `{"start":"2024-01-31"}`, http.StatusOK, ""},
		{"invalid body", http.MethodPost, "/api/v1/window", `{"start":"31/01/2024"}`, http.StatusBadRequest, "start"},
		{"unknown field", http.MethodPost, "/api/v1/window", `{"start":"2024-01-31","end":"x"}`, http.StatusBadRequest, "end"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, h, tc.method, tc.path, tc.body)
			if rec.Code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d / %d, want %d (%s)", rec.Code, env.StatusCode, tc.status, rec.Body.String())
			}
			if env.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Field, tc.field)
			}
			if env.RequestID == "" {
				t.Fatalf("missing request id")
			}
		})
	}
}

func TestCommonStackHeartbeatAndHeaders(t *testing.T) {
	h := newAPI(t)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "." {
		t.Fatalf("heartbeat = %d %q", rec.Code, rec.Body.String())
	}

	rec, _ = do(t, h, http.MethodGet, "/api/v1/years", "")
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("NoCache headers missing")
	}
}
