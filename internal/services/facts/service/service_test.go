package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"salesboard/internal/core/facts"
	perr "salesboard/internal/platform/errors"
	dom "salesboard/internal/services/facts/domain"
	"salesboard/internal/services/facts/repo"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func sampleRows() []facts.Record {
	return []facts.Record{
		{Operator: "A", Region: "R1", Station: "S1", Date: day(2024, 1, 1), Weekday: facts.Monday, Sales: 10},
		{Operator: "A", Region: "R1", Station: "S2", Date: day(2024, 1, 2), Weekday: facts.Tuesday, Sales: 20},
		{Operator: "B", Region: "R2", Station: "S3", Date: day(2023, 1, 3), Weekday: facts.Tuesday, Sales: 5},
	}
}

// fakeStore is an in memory repo.Writable
type fakeStore struct {
	mu       sync.Mutex
	rows     []facts.Record
	stations []string
	loads    atomic.Int32
	schema   int
	failOn   string
	calls    []string
}

func (f *fakeStore) LoadFacts(context.Context) ([]facts.Record, error) {
	f.loads.Add(1)
	if f.failOn == "load" {
		return nil, perr.New(perr.ErrorCodeUnavailable, "down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]facts.Record(nil), f.rows...), nil
}

func (f *fakeStore) LoadStations(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.stations...), nil
}

func (f *fakeStore) EnsureSchema(context.Context) error { f.schema++; return nil }

func (f *fakeStore) Truncate(context.Context) error {
	f.calls = append(f.calls, "truncate")
	f.rows, f.stations = nil, nil
	return nil
}

func (f *fakeStore) WriteFacts(_ context.Context, rows []facts.Record) error {
	f.calls = append(f.calls, "facts")
	if f.failOn == "write" {
		return errors.New("disk full")
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeStore) WriteStations(_ context.Context, names []string) error {
	f.calls = append(f.calls, "stations")
	f.stations = append(f.stations, names...)
	return nil
}

var _ repo.Writable = (*fakeStore)(nil)

func newTestService(st *fakeStore) *Service {
	clock := day(2025, 6, 1)
	return &Service{
		source:  dom.SourcePostgres,
		storage: st,
		tx: func(_ context.Context, fn func(repo.Writable) error) error {
			return fn(st)
		},
		now: func() time.Time { return clock },
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	st := &fakeStore{rows: sampleRows(), stations: []string{"S1", "S2", "S3", "S4"}}
	svc := newTestService(st)
	if svc.Loaded() {
		t.Fatalf("Loaded before Load")
	}
	ds, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := ds.Info()
	if info.Rows != 3 || info.Operators != 2 || info.Stations != 3 || info.KnownStations != 4 {
		t.Fatalf("info = %+v", info)
	}
	if info.Coverage != 75 || len(info.Years) != 2 || info.Source != dom.SourcePostgres {
		t.Fatalf("info = %+v", info)
	}
	if !ds.LoadedAt.Equal(day(2025, 6, 1)) || !svc.Loaded() {
		t.Fatalf("loaded at %v", ds.LoadedAt)
	}
}

func TestLoadDerivesRegistryWhenStorageHasNone(t *testing.T) {
	t.Parallel()

	ds, err := newTestService(&fakeStore{rows: sampleRows()}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := ds.Info()
	if info.KnownStations != 3 || info.Coverage != 100 {
		t.Fatalf("info = %+v", info)
	}
	if names := ds.Registry.Names(); len(names) != 3 || names[0] != "S1" || names[2] != "S3" {
		t.Fatalf("registry = %v", names)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeStore{failOn: "load"})
	if _, err := svc.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}

	bad := append(sampleRows(), facts.Record{Operator: "A", Region: "R9", Station: "S1", Date: day(2024, 1, 5), Weekday: facts.Friday, Sales: 1})
	svc = newTestService(&fakeStore{rows: bad})
	if _, err := svc.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation, got %v", err)
	}
	if svc.Loaded() {
		t.Fatalf("failed load must not install a dataset")
	}
}

func TestDatasetLoadsOnce(t *testing.T) {
	t.Parallel()

	st := &fakeStore{rows: sampleRows()}
	svc := newTestService(st)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Dataset(context.Background()); err != nil {
				t.Errorf("Dataset: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := st.loads.Load(); n != 1 {
		t.Fatalf("loads = %d, want 1", n)
	}

	// an explicit Load always rereads
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := st.loads.Load(); n != 2 {
		t.Fatalf("loads = %d, want 2", n)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	st := &fakeStore{rows: []facts.Record{{Operator: "old"}}, stations: []string{"gone"}}
	svc := newTestService(st)
	ctx := context.Background()

	if err := svc.EnsureSchema(ctx); err != nil || st.schema != 1 {
		t.Fatalf("EnsureSchema: %v (%d)", err, st.schema)
	}
	if err := svc.Replace(ctx, sampleRows(), []string{"S1", " S1 ", "S2"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(st.calls) != 3 || st.calls[0] != "truncate" || st.calls[2] != "stations" {
		t.Fatalf("calls = %v", st.calls)
	}
	if len(st.rows) != 3 || len(st.stations) != 2 {
		t.Fatalf("stored %d rows, %v", len(st.rows), st.stations)
	}
	// derived calendar fields are written
	if st.rows[0].Year == 0 || st.rows[0].MonthDay == "" {
		t.Fatalf("row not filled: %+v", st.rows[0])
	}
}

func TestReplaceRejectsInvalidRows(t *testing.T) {
	t.Parallel()

	st := &fakeStore{}
	svc := newTestService(st)
	bad := sampleRows()
	bad[0].Sales = -1
	if err := svc.Replace(context.Background(), bad, nil); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation, got %v", err)
	}
	if len(st.calls) != 0 {
		t.Fatalf("nothing should be written, got %v", st.calls)
	}

	st.failOn = "write"
	if err := svc.Replace(context.Background(), sampleRows(), nil); err == nil {
		t.Fatalf("want write error")
	}
}

func TestCSVIsReadOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	body := "operator,region,station,date,sales\nA,R1,S1,2024-01-01,10\nA,R1,S2,2024-01-02,20\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewCSV(repo.NewCSV(path, ""), zerolog.Nop())
	if svc.Writable() || svc.Source() != dom.SourceCSV {
		t.Fatalf("csv service should be read only")
	}
	ds, err := svc.Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	if ds.Table.Len() != 2 || ds.Registry.Len() != 0 {
		t.Fatalf("dataset = %+v", ds.Info())
	}
	if err := svc.Replace(context.Background(), nil, nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}

	missing := NewCSV(repo.NewCSV(filepath.Join(dir, "nope.csv"), ""), zerolog.Nop())
	if _, err := missing.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestConstructorsPanicOnNil(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = NewCH(nil, zerolog.Nop())
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	if s, err := dom.ParseSource("ch"); err != nil || s != dom.SourceClickhouse {
		t.Fatalf("ParseSource(ch) = %q, %v", s, err)
	}
	if _, err := dom.ParseSource("mysql"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}
