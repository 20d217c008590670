// Package httpkit is how modules register endpoints: handlers return
// (data, error) and the envelope, status mapping and body binding happen here
package httpkit

import (
	"net/http"
	"time"

	phttp "salesboard/internal/platform/net/http"
	"salesboard/internal/platform/net/http/bind"
	"salesboard/internal/platform/net/middleware"
)

// Router is the platform router seam
type Router = phttp.Router

// V1 is the versioned API scope
const V1 = "/api/v1"

// Get mounts a handler that reads no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, call(h))
}

// PostJSON mounts a handler whose body is decoded and validated into T first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, call(func(req *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return nil, err
		}
		return h(req, in)
	}))
}

// call wraps plain results in a 200 envelope; a handler may return a
// phttp.Response to pick its own status
func call(h func(*http.Request) (any, error)) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := h(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// CommonStack is the middleware every V1 request passes through
func CommonStack() []middleware.Middleware {
	return []middleware.Middleware{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.NoCache,
		middleware.AccessLog(500 * time.Millisecond),
		middleware.CORS(),
		middleware.Compress(),
		middleware.Heartbeat(V1 + "/health"),
		middleware.StripSlashes,
		middleware.Timeout(30 * time.Second),
	}
}

// MountAPIV1 scopes mount under V1 behind mw
func MountAPIV1(r Router, mw []middleware.Middleware, mount func(Router)) {
	r.Route(V1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
