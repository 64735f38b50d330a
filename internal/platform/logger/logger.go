// Package logger wraps zerolog behind a process-wide root logger plus
// helpers for detection-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charsniff/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type, an alias so call sites never
// import zerolog directly
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string            // trace|debug|info|warn|error|fatal|panic
	Format       string            // console or json
	Service      string            // service field on every line
	Component    string            // component field on every line
	Writer       io.Writer         // destination, os.Stdout when nil
	WithCaller   bool              // annotate lines with file:line
	SampleEvery  int               // keep one line in N when > 1
	StaticFields map[string]string // extra constant fields
}

// FromEnv reads LOG_* variables through the raw env view, which carries no
// logger dependency of its own
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "debug")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	bootOnce sync.Once
	rootLog  atomic.Pointer[zerolog.Logger]
	ready    atomic.Bool
)

// Get returns the root logger, initializing from the environment on first use
func Get() *Logger {
	if !ready.Load() {
		Init(FromEnv())
	}
	return rootLog.Load()
}

// Init builds the root logger once; later calls are no-ops
func Init(opt Options) {
	bootOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		base := zerolog.New(sink(opt)).Level(parseLevel(opt.Level))
		log := annotate(base.With(), opt).Logger()
		if opt.WithCaller {
			log = log.With().Caller().Logger()
		}
		if opt.SampleEvery > 1 {
			log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}

		rootLog.Store(&log)
		ready.Store(true)
	})
}

// sink picks the destination writer and wraps it for console output
func sink(opt Options) io.Writer {
	w := io.Writer(os.Stdout)
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return w
}

// annotate stamps the constant fields every line carries
func annotate(c zerolog.Context, opt Options) zerolog.Context {
	c = c.Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		c = c.Str(k, v)
	}
	return c
}

var levelNames = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
	"panic":   zerolog.PanicLevel,
}

// parseLevel maps a level name to zerolog's enum, debug when unknown
func parseLevel(s string) zerolog.Level {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return zerolog.DebugLevel
}

type detectKey struct{}

// WithDetection stamps ctx with the id of one detection run
func WithDetection(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, detectKey{}, id)
}

// C derives a child logger carrying the detection id from ctx, when present
func C(ctx context.Context) *Logger {
	if id, ok := ctx.Value(detectKey{}).(string); ok && id != "" {
		ll := Get().With().Str("detect_id", id).Logger()
		return &ll
	}
	return Get()
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
