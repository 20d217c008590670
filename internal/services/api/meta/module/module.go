// Package module wires the meta endpoints
package module

import (
	"time"

	"salesboard/internal/modkit"
	phttp "salesboard/internal/platform/net/http"
	metahttp "salesboard/internal/services/api/meta/http"
)

// Ports optionally injects the dataset the meta endpoints report on
type Ports struct {
	Facts metahttp.Facts
}

// Module serves /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	injected, _ := b.Ports.(Ports)

	// a store that was not opened is a nil interface and readiness skips it
	d := metahttp.Deps{
		ServiceName: "salesboard-api",
		StartedAt:   time.Now(),
		Backends:    []metahttp.Backend{{Name: "pg", Conn: deps.PG}, {Name: "ch", Conn: deps.CH}},
		Facts:       injected.Facts,
	}
	return &Module{b: b, deps: d}
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module; meta shares nothing
func (m *Module) Ports() any { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) { metahttp.Register(sub, m.deps) })
}
