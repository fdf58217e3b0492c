package observability

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/knight-arena/internal/config"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

// Runtime holds the tracing exporter, the continuous profiler and the pprof
// listener started for the process. Disabled parts are nil.
type Runtime struct {
	logger   *logging.Logger
	tracing  bool
	profiler stopper
	debug    *debugServer
}

type stopper interface {
	Stop() error
}

// Start brings up every enabled telemetry component. On failure the parts
// already running are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	rt.tracing = startTracing(cfg, rt.logger)

	profiler, err := startProfiler(cfg, rt.logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	rt.profiler = profiler

	debug, err := startDebugServer(cfg.PprofEnabled, cfg.PprofAddr, rt.logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pprof")
	}
	rt.debug = debug

	return rt, nil
}

// Shutdown flushes spans and stops profilers. Every component is stopped even
// when an earlier one fails.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}

	var err error
	if rt.debug != nil {
		err = crerr.CombineErrors(err, rt.debug.stop(ctx))
		rt.debug = nil
	}
	if rt.profiler != nil {
		err = crerr.CombineErrors(err, rt.profiler.Stop())
		rt.profiler = nil
	}
	if rt.tracing {
		err = crerr.CombineErrors(err, uptrace.Shutdown(ctx))
		rt.tracing = false
	}
	return err
}

// DebugAddr is the bound pprof address, empty when pprof is off.
func (rt *Runtime) DebugAddr() string {
	if rt == nil || rt.debug == nil {
		return ""
	}
	return rt.debug.addr
}

func startTracing(cfg config.Config, logger *logging.Logger) bool {
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return false
	case dsn == "":
		logger.Warn("tracing disabled", "reason", "UPTRACE_DSN empty")
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("tracing enabled", "exporter", "uptrace", "logs", cfg.UptraceLogsEnabled)
	return true
}
