package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"salesboard/internal/modkit"
	"salesboard/internal/platform/config"
	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/services/facts/domain"
	factsmod "salesboard/internal/services/facts/module"
)

const salesCSV = `operator,region,station,date,sales
A,North,Leeds,2023-12-13,10
A,North,Leeds,2024-12-11,12
B,South,Brighton,2024-12-11,7
`

func newMux(t *testing.T, swagger bool) http.Handler {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(fp, []byte(salesCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.New().Prefix("API_TEST_")
	facts := factsmod.NewWithOptions(modkit.Deps{Cfg: cfg}, factsmod.Options{Source: domain.SourceCSV, FactsPath: fp})

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Config: cfg, Facts: facts, EnableSwagger: swagger})
	return mux
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("GET %s: %v (%q)", path, err, rec.Body.String())
		}
	}
	return rec.Code, body
}

func TestMountServesModules(t *testing.T) {
	h := newMux(t, false)

	// the first dashboard call loads the csv
	code, body := get(t, h, "/api/v1/dashboard/overview")
	if code != http.StatusOK || body["request_id"] == "" {
		t.Fatalf("overview = %d %v", code, body)
	}

	code, body = get(t, h, "/api/v1/meta/dataset")
	if code != http.StatusOK {
		t.Fatalf("dataset = %d %v", code, body)
	}
	data := body["data"].(map[string]any)
	info, _ := data["info"].(map[string]any)
	if data["loaded"] != true || info["rows"] != float64(3) || info["known_stations"] != float64(2) || info["coverage"] != float64(100) {
		t.Fatalf("dataset = %v", data)
	}
	if code, _ = get(t, h, "/api/v1/health"); code != http.StatusOK {
		t.Fatalf("heartbeat = %d", code)
	}
	if code, _ = get(t, h, "/api/docs/doc.json"); code != http.StatusNotFound {
		t.Fatalf("docs mounted while disabled: %d", code)
	}
}

func TestMountSwaggerListsEveryRoute(t *testing.T) {
	code, doc := get(t, newMux(t, true), "/api/docs/doc.json")
	if code != http.StatusOK {
		t.Fatalf("doc.json = %d", code)
	}
	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/meta/health", "/meta/dataset", "/dashboard/report", "/dashboard/options", "/dashboard/overview"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing %s in %v", p, paths)
		}
	}
}
