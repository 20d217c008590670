package http

import (
	"encoding/json"
	"net/http"

	perr "salesboard/internal/platform/errors"
	"salesboard/internal/platform/logger"
	pnet "salesboard/internal/platform/net"
)

// Envelope wraps every JSON body the API returns
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers produce; a Body that is an error
// is written as an error envelope with the mapped status
type Response struct {
	Status int
	Body   any
}

// OK is a 200 response carrying data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// Error is a response whose status comes from err
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return-style handler
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) { fn(r).Write(w, r) }
}

// Write encodes resp inside the envelope
func (resp Response) Write(w http.ResponseWriter, r *http.Request) {
	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		wire := perr.WireFrom(err)
		env.StatusCode = perr.HTTPStatus(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
		if env.StatusCode >= http.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		}
	} else {
		env.StatusCode = resp.Status
		if env.StatusCode == 0 {
			env.StatusCode = http.StatusOK
		}
		env.Data = resp.Body
	}
	env.Status = http.StatusText(env.StatusCode)
	WriteJSON(w, env.StatusCode, env)
}

// WriteJSON writes v with status; an unencodable v becomes a bare 500
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"status_code":500,"status":"Internal Server Error","error":"response encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
