// Package modkit wires the API modules: the deps they share, their build
// options and how one module finds another's ports
package modkit

import (
	"reflect"

	"salesboard/internal/modkit/repokit"
	"salesboard/internal/platform/config"
	"salesboard/internal/platform/logger"
	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/platform/net/middleware"
	"salesboard/internal/platform/store"
)

// Deps are handed to every module; PG and CH are nil unless opened
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Module is one slice of the API
type Module interface {
	Name() string
	// Ports is what other modules may consume, nil when nothing is shared
	Ports() any
	MountRoutes(r phttp.Router)
}

// Built is the result of applying Options
type Built struct {
	Name   string
	Prefix string
	Ports  any
	Mw     []middleware.Middleware
}

// Option configures a module at construction
type Option func(*Built)

// Build applies opts in order, later ones win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName names the module in logs and panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares adds module scoped middleware
func WithMiddlewares(mw ...middleware.Middleware) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the ports a module consumes from others
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Mount routes register under b.Prefix behind b.Mw
func (b Built) Mount(r phttp.Router, register func(phttp.Router)) {
	r.Route(b.Prefix, func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		register(sub)
	})
}

// PortsOf finds T in m.Ports(), either the value itself or one of its
// exported struct fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " does not provide " + reflect.TypeFor[T]().String())
	}
	return v
}
