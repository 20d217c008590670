// Package http is the transport layer: a router seam over chi, the JSON
// response envelope and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler signature routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against. It serves HTTP so a
// mounted tree can be exercised directly in tests.
type Router interface {
	http.Handler
	Get(pattern string, h Handler)
	Post(pattern string, h Handler)
	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
}

// AdaptChi wraps a chi router; sub routers created by Route are wrapped too
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

type chiRouter struct{ r chi.Router }

func (c chiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) { c.r.ServeHTTP(w, req) }

func (c chiRouter) Get(p string, h Handler)                   { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)                  { c.r.Post(p, h) }
func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(p string, fn func(Router)) {
	c.r.Route(p, func(sub chi.Router) { fn(chiRouter{sub}) })
}
