package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "salesboard/internal/platform/net/http"
)

type years interface{ Years() []int }

type fixedYears []int

func (f fixedYears) Years() []int { return f }

type stub struct {
	name  string
	ports any
}

func (s stub) Name() string             { return s.name }
func (s stub) Ports() any               { return s.ports }
func (s stub) MountRoutes(phttp.Router) {}

func TestBuildLaterOptionsWin(t *testing.T) {
	b := Build(WithName("dashboard"), WithPrefix("/dashboard"), WithPrefix("/dash"), WithPorts(fixedYears{2024}))
	if b.Name != "dashboard" || b.Prefix != "/dash" {
		t.Fatalf("built = %+v", b)
	}
	if _, ok := b.Ports.(fixedYears); !ok {
		t.Fatalf("ports = %T", b.Ports)
	}
}

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Years years
		Other int
	}
	type hidden struct{ years years }

	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", fixedYears{2023}, true},
		{"exported field", bundle{Years: fixedYears{2023}}, true},
		{"pointer to bundle", &bundle{Years: fixedYears{2023}}, true},
		{"nil field", bundle{}, false},
		{"unexported field", hidden{years: fixedYears{2023}}, false},
		{"unrelated", 42, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[years](stub{name: "facts", ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Years()[0] != 2023 {
				t.Fatalf("got = %v", got.Years())
			}
		})
	}
}

func TestMustPortsOfPanicNamesModule(t *testing.T) {
	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.Contains(msg, "facts") || !strings.Contains(msg, "years") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustPortsOf[years](stub{name: "facts"})
}

func TestBuiltMount(t *testing.T) {
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "dashboard")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(WithPrefix("/dashboard"), WithMiddlewares(tagged))

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r phttp.Router) {
		r.Get("/stations", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stations", nil))
	if rec.Code != http.StatusNoContent || rec.Header().Get("X-Module") != "dashboard" {
		t.Fatalf("got %d %v", rec.Code, rec.Header())
	}
}
