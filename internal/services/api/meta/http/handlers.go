// Package http serves the meta endpoints: liveness, readiness, build and
// fact store info
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"salesboard/internal/core/version"
	"salesboard/internal/modkit/httpkit"
	"salesboard/internal/modkit/swaggerkit"
	factsdom "salesboard/internal/services/facts/domain"
)

// Pinger is satisfied by store backends
type Pinger interface {
	Ping(stdctx.Context) error
}

// Backend is one store readiness pings; a nil Conn is not wired and skipped
type Backend struct {
	Name string
	Conn any
}

// Facts reports on the loaded dataset
type Facts interface {
	factsdom.ProviderPort
	Loaded() bool
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend
	// Facts nil skips the dataset check
	Facts Facts
}

// Check states
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
	// CheckUnknown marks a backend that cannot be pinged
	CheckUnknown = "unknown"
)

// readyTimeout bounds all pings of one readiness request
const readyTimeout = 2 * time.Second

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/dataset", h.dataset)
}

// Docs lists the meta endpoints for the OpenAPI document
var Docs = []swaggerkit.Route{
	{Method: http.MethodGet, Path: "/meta/health", Tag: "Meta", Summary: "Liveness and whether the fact store is loaded"},
	{Method: http.MethodGet, Path: "/meta/ready", Tag: "Meta", Summary: "Readiness with store and dataset checks"},
	{Method: http.MethodGet, Path: "/meta/version", Tag: "Meta", Summary: "Build and version info"},
	{Method: http.MethodGet, Path: "/meta/service", Tag: "Meta", Summary: "Service name and uptime"},
	{Method: http.MethodGet, Path: "/meta/dataset", Tag: "Meta", Summary: "Fact store source, size and registry coverage"},
}

// HealthResponse is always 200 while the process serves requests
type HealthResponse struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Loaded  bool      `json:"dataset_loaded"`
	Now     time.Time `json:"now"`
}

// ReadyCheck is the outcome of one dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse is ok when every check passed or was skipped, fail when any
// failed, degraded otherwise
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    time.Time    `json:"now"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string    `json:"name"`
	Started time.Time `json:"started"`
	Uptime  int64     `json:"uptime_seconds"`
}

// DatasetResponse carries Info only once the fact store is loaded
type DatasetResponse struct {
	Loaded bool           `json:"loaded"`
	Info   *factsdom.Info `json:"info,omitempty"`
}

func (h *handlers) loaded() bool { return h.deps.Facts != nil && h.deps.Facts.Loaded() }

func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Loaded: h.loaded(), Now: h.now().UTC()}, nil
}

func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, 0, len(h.deps.Backends)+1)
	for _, b := range h.deps.Backends {
		checks = append(checks, ping(ctx, b))
	}
	checks = append(checks, h.datasetCheck())

	return ReadyResponse{Status: overall(checks), Checks: checks, Now: h.now().UTC()}, nil
}

func ping(ctx stdctx.Context, b Backend) ReadyCheck {
	c := ReadyCheck{Name: b.Name, Status: CheckSkipped}
	if b.Conn == nil {
		return c
	}
	p, ok := b.Conn.(Pinger)
	if !ok {
		c.Status = CheckUnknown
		return c
	}
	if err := p.Ping(ctx); err != nil {
		c.Status, c.Error = CheckFail, err.Error()
		return c
	}
	c.Status = CheckOK
	return c
}

func (h *handlers) datasetCheck() ReadyCheck {
	switch {
	case h.deps.Facts == nil:
		return ReadyCheck{Name: "dataset", Status: CheckSkipped}
	case !h.deps.Facts.Loaded():
		return ReadyCheck{Name: "dataset", Status: CheckFail, Error: "fact store not loaded"}
	}
	return ReadyCheck{Name: "dataset", Status: CheckOK}
}

func overall(checks []ReadyCheck) string {
	out := "ok"
	for _, c := range checks {
		switch c.Status {
		case CheckFail:
			return "fail"
		case CheckUnknown:
			out = "degraded"
		}
	}
	return out
}

func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC(),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// dataset never triggers a load; the dashboard endpoints do that
func (h *handlers) dataset(r *http.Request) (any, error) {
	if !h.loaded() {
		return DatasetResponse{}, nil
	}
	ds, err := h.deps.Facts.Dataset(r.Context())
	if err != nil {
		return nil, err
	}
	info := ds.Info()
	return DatasetResponse{Loaded: true, Info: &info}, nil
}
