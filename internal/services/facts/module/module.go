// Package module wires the facts service; it owns no routes
package module

import (
	"salesboard/internal/modkit"
	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/services/facts/domain"
	"salesboard/internal/services/facts/repo"
	"salesboard/internal/services/facts/service"
)

// Ports exposed by the facts module
type Ports struct {
	Provider domain.ProviderPort
	Loader   domain.LoaderPort
	// Writer is nil for the csv source
	Writer domain.WriterPort
}

// Module implements the facts service module
type Module struct {
	svc   *service.Service
	ports Ports
}

// New constructs the facts module from SALES_* config
func New(deps modkit.Deps) *Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg))
}

// NewWithOptions constructs the facts module for opts.Source; a pg or ch
// source without its store in deps panics at startup
func NewWithOptions(deps modkit.Deps, opts Options) *Module {
	var svc *service.Service
	switch opts.Source {
	case domain.SourcePostgres:
		if deps.PG == nil {
			panic("facts: pg source requires SERVICE_PGSQL_DBURL")
		}
		svc = service.NewPG(deps.PG, repo.NewPG(), deps.Log)
	case domain.SourceClickhouse:
		if deps.CH == nil {
			panic("facts: clickhouse source requires SERVICE_CLICKHOUSE_DBURL")
		}
		svc = service.NewCH(repo.NewCH(deps.CH), deps.Log)
	default:
		svc = service.NewCSV(repo.NewCSV(opts.FactsPath, opts.StationsPath), deps.Log)
	}

	m := &Module{svc: svc}
	m.ports = Ports{Provider: svc, Loader: svc}
	if svc.Writable() {
		m.ports.Writer = svc
	}
	return m
}

// Service exposes the concrete service to commands
func (m *Module) Service() *service.Service { return m.svc }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "facts" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; facts serves other modules, not requests
func (m *Module) MountRoutes(phttp.Router) {}
