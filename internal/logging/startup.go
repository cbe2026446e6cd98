package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects server identity, configuration, model bindings, and
// feature flags, then emits a single structured zerolog event summarising the
// state the process started with. This makes it easy to understand exactly how
// the server was configured when troubleshooting from its logs.
type StartupLogger struct {
	name         string
	addr         string
	initDuration time.Duration

	models   map[string]string
	features map[string]bool
	config   map[string]string
}

// NewStartupLogger creates a StartupLogger for the given server name
// (e.g. "studio-web").
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:     name,
		models:   make(map[string]string),
		features: make(map[string]bool),
		config:   make(map[string]string),
	}
}

// Addr sets the listen address the server is bound to.
func (s *StartupLogger) Addr(addr string) *StartupLogger {
	s.addr = addr
	return s
}

// Model registers a model identifier bound to a capability
// (e.g. "describe", "generate", "edit").
func (s *StartupLogger) Model(capability, id string) *StartupLogger {
	s.models[capability] = id
	return s
}

// Feature registers a boolean feature flag.
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// Config registers a non-sensitive configuration key-value pair.
// Never pass credentials here.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long startup (config, client construction,
// key validation) took to complete.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	serverDict := zerolog.Dict().
		Str("name", s.name).
		Str("addr", s.addr).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Int("pid", os.Getpid()).
		Str("logLevel", os.Getenv("STUDIO_LOG_LEVEL"))

	evt = evt.Dict("server", serverDict)

	if len(s.models) > 0 {
		evt = evt.Dict("models", dictFromMap(s.models))
	}

	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}

	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}

	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Server startup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
