// Package logger wraps zerolog: one process root built from LOG_* env vars,
// and request scoped children carrying the request and report ids.
package logger

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type passed around the service
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level     string // trace debug info warn error
	Format    string // console or json
	Service   string
	Component string
	Caller    bool
	Sample    int // keep one event in Sample, 0 keeps all
	Writer    io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT,
// LOG_CALLER and LOG_SAMPLE_EVERY. It reads the environment directly so
// the config package can log through this one.
func FromEnv() Options {
	env := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	caller, _ := strconv.ParseBool(env("CALLER", "false"))
	sample, _ := strconv.Atoi(env("SAMPLE_EVERY", "0"))
	return Options{
		Level:     strings.ToLower(env("LEVEL", "debug")),
		Format:    strings.ToLower(env("FORMAT", "console")),
		Service:   env("SERVICE", "salesboard"),
		Component: env("COMPONENT", ""),
		Caller:    caller,
		Sample:    sample,
	}
}

// New builds a logger from opt without touching the process root
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	if opt.Caller {
		c = c.Caller()
	}
	l := c.Logger()
	if opt.Sample > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.Sample)})
	}
	return l
}

var (
	once sync.Once
	root Logger
)

// Init sets the process root; only the first call has an effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = New(opt)
	})
}

// Get returns the process root, building it from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keyReportID
)

// WithRequest stores the request id and the dashboard report id on ctx
func WithRequest(ctx context.Context, reqID, reportID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if reportID != "" {
		ctx = context.WithValue(ctx, keyReportID, reportID)
	}
	return ctx
}

// C returns a child of the root with request_id and report_id from ctx.
// The request id falls back to the one chi's RequestID middleware set.
func C(ctx context.Context) *Logger {
	return from(Get(), ctx)
}

func from(base *Logger, ctx context.Context) *Logger {
	b := base.With()
	reqID, _ := ctx.Value(keyRequestID).(string)
	if reqID == "" {
		reqID = chimw.GetReqID(ctx)
	}
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if id, _ := ctx.Value(keyReportID).(string); id != "" {
		b = b.Str("report_id", id)
	}
	l := b.Logger()
	return &l
}
