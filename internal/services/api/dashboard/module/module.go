// Package module wires the dashboard into the API
package module

import (
	"salesboard/internal/modkit"
	phttp "salesboard/internal/platform/net/http"
	dashhttp "salesboard/internal/services/api/dashboard/http"
	dashsvc "salesboard/internal/services/api/dashboard/service"
	factsdom "salesboard/internal/services/facts/domain"
)

// Ports declares the dataset port this module requires
type Ports struct {
	Provider factsdom.ProviderPort
}

// Module serves /dashboard
type Module struct {
	b   modkit.Built
	svc dashsvc.Service
}

// New constructs the dashboard module; it panics without a Provider port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dashboard"), modkit.WithPrefix("/dashboard")}, opts...)...)
	injected, _ := b.Ports.(Ports)
	if injected.Provider == nil {
		panic("dashboard module requires the Provider port (from services/facts)")
	}
	return &Module{b: b, svc: dashsvc.New(injected.Provider, FromConfig(deps.Cfg))}
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the dashboard service
func (m *Module) Ports() any { return m.svc }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) { dashhttp.Register(sub, m.svc) })
}
